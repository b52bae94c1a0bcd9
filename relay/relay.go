// Package relay moves child-process output to a display sink.
//
// Forward reads a stream line by line on the calling goroutine. Queue hands
// the lines from any number of producers to one consumer goroutine, which
// is the only place a sink such as a widget is ever mutated.
package relay

import (
	"bufio"
	"errors"
	"io"
)

// Forward reads r line by line and passes each line, newline included, to
// sink in the order it was produced. A trailing fragment without a newline
// is forwarded as well. It returns the number of lines forwarded and the
// first read error other than io.EOF.
func Forward(r io.Reader, sink func(string)) (int, error) {
	br := bufio.NewReader(r)
	n := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sink(line)
			n++
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
	}
}
