package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/schema"
)

const maxLineSize = 4 * 1024 * 1024

// lineDecoder turns one NDJSON line into a fragment. ok is false for lines to skip.
type lineDecoder func(line []byte) (frag Fragment, ok bool)

func decodeChatLine(line []byte) (Fragment, bool) {
	var parsed chatLine
	if err := json.Unmarshal(line, &parsed); err != nil {
		return Fragment{}, false
	}
	frag := Fragment{Done: parsed.Done}
	if parsed.Message != nil {
		frag.Content = parsed.Message.Content
	}
	return frag, true
}

func decodeGenerateLine(line []byte) (Fragment, bool) {
	var parsed generateLine
	if err := json.Unmarshal(line, &parsed); err != nil {
		return Fragment{}, false
	}
	return Fragment{Content: parsed.Response, Done: parsed.Done}, true
}

// pipeBody decodes body in a goroutine and exposes the fragments as an eino stream.
// The body is closed when the stream ends, the reader is closed, or ctx is cancelled.
func pipeBody(ctx context.Context, body io.ReadCloser, decode lineDecoder) *schema.StreamReader[Fragment] {
	sr, sw := schema.Pipe[Fragment](16)

	go func() {
		defer sw.Close()
		defer body.Close()

		stop := context.AfterFunc(ctx, func() { _ = body.Close() })
		defer stop()

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			frag, ok := decode(line)
			if !ok {
				continue
			}
			if closed := sw.Send(frag, nil); closed {
				return
			}
			if frag.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			sw.Send(Fragment{}, fmt.Errorf("error reading stream: %w", err))
		}
	}()

	return sr
}

// CollectText drains a stream and concatenates every fragment's content.
// The reader is closed before returning.
func CollectText(stream *schema.StreamReader[Fragment]) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for {
		frag, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return sb.String(), nil
			}
			return sb.String(), err
		}
		sb.WriteString(frag.Content)
		if frag.Done {
			return sb.String(), nil
		}
	}
}
