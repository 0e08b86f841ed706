package files

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/activecm/asa-elephant/util"
	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
)

// ReadInput loads a whole connection table dump into memory. Files ending in
// .gz are decompressed on the fly. Failures are returned as *util.IOError.
func ReadInput(path string, logger *log.Logger) (string, error) {
	fileHandle, err := os.Open(path)
	if err != nil {
		return "", util.NewIOError("open", path, err)
	}

	info, err := fileHandle.Stat()
	if err != nil {
		fileHandle.Close()
		return "", util.NewIOError("stat", path, err)
	}
	if info.IsDir() {
		fileHandle.Close()
		return "", util.NewIOError("open", path, fmt.Errorf("is a directory"))
	}
	checkMemory(path, info.Size(), logger)

	var reader io.Reader = fileHandle
	closer := fileHandle.Close
	if strings.HasSuffix(path, ".gz") {
		reader, closer, err = newGzipReader(fileHandle)
		if err != nil {
			closer()
			return "", util.NewIOError("decompress", path, err)
		}
	}

	data, err := io.ReadAll(reader)
	closeErr := closer()
	if err != nil {
		return "", util.NewIOError("read", path, err)
	}
	if closeErr != nil {
		return "", util.NewIOError("close", path, closeErr)
	}

	if logger != nil {
		logger.WithFields(log.Fields{
			"path":  path,
			"bytes": len(data),
		}).Debug("Read connection table dump")
	}
	return string(data), nil
}

// checkMemory warns when a dump is large enough that holding it and its
// parsed records in memory may exhaust the host
func checkMemory(path string, size int64, logger *log.Logger) {
	if logger == nil || size <= 0 {
		return
	}
	total := memory.TotalMemory()
	if total == 0 || uint64(size) < total/2 {
		return
	}
	logger.WithFields(log.Fields{
		"path":         path,
		"size":         size,
		"total_memory": total,
	}).Warn("Input is larger than half of system memory")
}

//newGzipReader returns an un-gzipped byte stream given a gzip compressed byte stream.
//This method tries to use the system's pigz or gzip implementation before relying on
//Golang's gzip package (as it is quite slow). Returns stream to read from, a function to
//close the underlying stream, and any err that may occur when opening the stream.
func newGzipReader(fileHandle io.ReadCloser) (reader io.Reader, closer func() error, err error) {
	// by default just close out the underlying file handle
	// works for built in gzip library and error cases
	closer = fileHandle.Close

	var gzipPath string
	if path, err := exec.LookPath("pigz"); err == nil {
		gzipPath = path
	} else if path, err := exec.LookPath("gzip"); err == nil {
		gzipPath = path
	} else {
		reader, err = gzip.NewReader(fileHandle)
		return reader, closer, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	gzipCommand := exec.CommandContext(ctx, gzipPath, "-d", "-c")
	gzipCommand.Stdin = fileHandle

	pipeR, err := gzipCommand.StdoutPipe()
	if err != nil {
		cancel()
		return reader, fileHandle.Close, err
	}

	var cmdStdErr bytes.Buffer
	gzipCommand.Stderr = &cmdStdErr

	if err := gzipCommand.Start(); err != nil {
		cancel()
		return reader, fileHandle.Close, err
	}

	// the whole stream is read before closer runs, so Wait sees a finished process
	closer = func() error {
		errProc := gzipCommand.Wait()
		cancel()
		errFile := fileHandle.Close()

		if errProc != nil && cmdStdErr.Len() > 0 {
			errProc = fmt.Errorf("%s: %s", errProc.Error(), cmdStdErr.String())
		}
		if errProc != nil && errFile != nil {
			return fmt.Errorf("%s; %s", errProc.Error(), errFile.Error())
		}
		if errProc != nil {
			return errProc
		}
		return errFile
	}

	return pipeR, closer, nil
}
