// Package convert shells out to a headless office suite to render an RTF
// document as HTML, so two documents can be compared structurally through an
// independent implementation of the format.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// converterBinary is the LibreOffice command-line front end.
const converterBinary = "soffice"

var (
	// ErrConverterUnavailable is returned when the converter binary is not
	// installed or not on PATH.
	ErrConverterUnavailable = errors.New("soffice is not installed or not available on PATH")
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("rtf input file does not exist")
	// ErrWrongExtension is returned when the input is not an .rtf file.
	ErrWrongExtension = errors.New("expected an .rtf input file")
	// ErrConversionFailed is returned when the converter exits non-zero.
	ErrConversionFailed = errors.New("conversion failed")
)

// Available reports whether the converter binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath(converterBinary)
	return err == nil
}

// ToHTML converts one RTF file to HTML in outputDir and returns the path of
// the produced file.
func ToHTML(inputPath, outputDir string) (string, error) {
	if !Available() {
		return "", ErrConverterUnavailable
	}
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if !strings.EqualFold(filepath.Ext(inputPath), ".rtf") {
		return "", fmt.Errorf("%w, got: %s", ErrWrongExtension, filepath.Base(inputPath))
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	cmd := exec.Command(converterBinary,
		"--headless",
		"--convert-to", "html",
		"--outdir", outputDir,
		inputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s exited with code %d: %s",
				ErrConversionFailed, converterBinary, exitErr.ExitCode(),
				strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(outputDir, stem+".html"), nil
}
