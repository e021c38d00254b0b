/*
Package seamcarve is a content aware image shrinking library. It reduces the width and
height of an image by repeatedly removing the connected path of pixels (the seam) with
the lowest total energy, which keeps the important parts of the image intact better than
scaling or cropping.

The energy of a pixel is the squared colour gradient between its horizontal and its
vertical neighbours, with lookups wrapping around the image edges. Seams are found with
dynamic programming over the cumulative energy table, so the returned seam is the global
minimum over all connected paths.

The package provides a command line interface, supporting various flags. To check the
supported commands type:

	$ seamcarve --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/seamcarve/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth:  120,
			NewHeight: 100,
		}

		if err := p.Process(os.Stdin, os.Stdout); err != nil {
			fmt.Printf("Error carving image: %s", err.Error())
		}
	}
*/
package seamcarve
