package main

import (
	"flag"
	"log"
)

// An HTTP API over the courses, enrollments, live sessions and notifications of the academy.
// Dependencies are wired with dig by default, `-di manual` wires them by hand.
func main() {
	di := flag.String("di", "dig", "dependency wiring: dig | manual")
	flag.Parse()

	switch *di {
	case "dig":
		startWithDig()
	case "manual":
		startManual()
	default:
		log.Fatalf("unknown -di %q", *di)
	}
}
