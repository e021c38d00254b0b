package seamcarve

import (
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
	"golang.org/x/term"
)

// PipeName is the file name that indicates stdin/stdout is being used.
const PipeName = "-"

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// defaultDownloadName names downloaded sources whose URL has no file name.
const defaultDownloadName = "image.ppm"

// Ops holds the source and destination of a carving job.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int

	// name is used for the default output name of downloaded sources.
	name string
}

// result holds the relevant information about the resizing process and the generated image.
type result struct {
	path string
	err  error
}

// Execute runs the carving job. A directory source is processed concurrently,
// every other source (file, named pipe, stdin or URL) is processed on its own.
func (p *Processor) Execute(op *Ops) error {
	if op.PipeName == "" {
		op.PipeName = PipeName
	}
	now := time.Now()

	src := op.Src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return errors.Wrap(err, "failed to load the source image")
		}
		f.Close()
		defer os.Remove(f.Name())

		op.name = downloadName(src)
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return errors.Wrap(err, "failed to load the source image")
	}

	// Restore the cursor visibility on CTRL-C.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(done)
	}()
	go func() {
		select {
		case <-signalChan:
			if p.Spinner != nil {
				p.Spinner.RestoreCursor()
			}
			os.Exit(1)
		case <-done:
		}
	}()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := p.executeDir(op, src); err != nil {
			return err
		}
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		dst := op.Dst
		if dst != "" && dst != op.PipeName && !isValidExtension(filepath.Ext(dst)) {
			return errors.Errorf("%v file type not supported", filepath.Ext(dst))
		}
		if dst == "" && src == op.PipeName {
			dst = op.PipeName
		}
		if p.Spinner != nil {
			p.Spinner.Start()
		}
		dst, err = op.process(p, src, dst)
		if p.Spinner != nil {
			if err != nil {
				p.Spinner.StopMsg = utils.StatusLine("carving failed ✘\n", utils.ErrorMessage)
			} else {
				p.Spinner.StopMsg = utils.StatusLine("the image has been carved successfully ✔\n", utils.SuccessMessage)
			}
			p.Spinner.Stop()
		}
		op.printOpStatus(dst, err)
		if err != nil {
			return err
		}
	default:
		return errors.Errorf("%s is neither a file nor a directory", src)
	}

	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// executeDir carves every supported image of the directory tree using a pool of workers.
func (p *Processor) executeDir(op *Ops, src string) error {
	if op.Dst != "" {
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return errors.Wrap(err, "unable to create the destination directory")
		}
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, src)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var failed int
	for res := range ch {
		if res.err != nil {
			failed++
		}
		op.printOpStatus(res.path, res.err)
	}

	if err := <-errc; err != nil {
		return err
	}
	if failed > 0 {
		return errors.Errorf("%d image(s) could not be carved", failed)
	}
	return nil
}

// consumer reads the path names from the paths channel and carves each source image.
func (op *Ops) consumer(
	p *Processor,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		var dst string
		if op.Dst != "" {
			dst = filepath.Join(op.Dst, filepath.Base(src))
		}
		dst, err := op.process(p, src, dst)
		if err == nil {
			src = dst
		}

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process carves a single image and returns the destination it was written to.
// An empty destination is replaced by the default carved<W>X<H>.<name> file beside the source.
func (op *Ops) process(p *Processor, in, out string) (string, error) {
	if out == "" {
		var err error
		if out, err = op.defaultDestination(p, in); err != nil {
			return "", err
		}
	}

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return out, err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)

	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		// remove the generated image file in case of an error
		if err != nil {
			os.Remove(f.Name())
		}
	}
	return out, err
}

// defaultDestination names the output after the target size, e.g. carved120X125.sunset.ppm.
func (op *Ops) defaultDestination(p *Processor, in string) (string, error) {
	if in == op.PipeName {
		return op.PipeName, nil
	}
	cfg, err := sourceConfig(in)
	if err != nil {
		return "", err
	}
	tw, th := p.Target(cfg.Width, cfg.Height)

	dir, name := filepath.Dir(in), filepath.Base(in)
	if op.name != "" {
		dir, name = ".", op.name
	}
	if !isValidExtension(filepath.Ext(name)) {
		name += ".ppm"
	}
	return filepath.Join(dir, fmt.Sprintf("carved%dX%d.%s", tw, th, name)), nil
}

// downloadName returns the file name used for the default output of a downloaded source.
func downloadName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDownloadName
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return defaultDownloadName
	}
	return name
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to open the source file")
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.Wrap(err, "unable to create the destination file")
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the carving of one image.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText("\nError carving the image: ", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("%s\n\tReason: %v\n", filepath.Base(fname), err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s\n",
			utils.DecorateText(fname, utils.SuccessMessage),
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported image on a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(done <-chan struct{}, src string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() || !isValidExtension(filepath.Ext(f.Name())) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
