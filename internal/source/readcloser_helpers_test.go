package source

import "io"

type testReadCloser struct {
	reader io.Reader

	closeErr   error
	closed     bool
	closeCount int
}

func (r *testReadCloser) Read(p []byte) (int, error) {
	if r.reader == nil {
		return 0, io.EOF
	}
	return r.reader.Read(p)
}

func (r *testReadCloser) Close() error {
	r.closeCount++
	r.closed = true
	return r.closeErr
}
