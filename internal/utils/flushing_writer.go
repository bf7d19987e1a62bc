package utils

import (
	"io"
	"sync"
)

// Flusher matches writers that buffer output until explicitly flushed.
type Flusher interface {
	Flush() error
}

// FlushingWriter ensures progress lines written to buffered writers become visible immediately.
type FlushingWriter struct {
	writer  io.Writer
	flusher Flusher
	mutex   sync.Mutex
}

// NewFlushingWriter wraps the provided writer and flushes it after each write when the writer supports flushing.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}

	flushingWriter := &FlushingWriter{writer: writer}
	if flusher, supportsFlush := writer.(Flusher); supportsFlush {
		flushingWriter.flusher = flusher
	}
	return flushingWriter
}

// Write delegates to the underlying writer and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError != nil {
		return bytesWritten, writeError
	}

	if flushingWriter.flusher != nil {
		if flushError := flushingWriter.flusher.Flush(); flushError != nil {
			return bytesWritten, flushError
		}
	}

	return bytesWritten, nil
}
