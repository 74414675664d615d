// Command amountscan extracts the amount to convert from text or from an image/PDF file.
//
//	amountscan --text "convert 1,250.50$ to cedis"
//	amountscan receipt.jpg
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Aashish23092/ocr-currency-scanner/client"
	"github.com/Aashish23092/ocr-currency-scanner/logger"
	"github.com/Aashish23092/ocr-currency-scanner/service"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("pass --text or exactly one file path")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := ff.NewFlagSet("amountscan")
	var (
		text      = fs.StringLong("text", "", "Text to extract the amount from")
		password  = fs.StringLong("password", "", "Password for encrypted PDFs")
		tessdata  = fs.StringLong("tessdata", "/usr/share/tesseract-ocr/5/tessdata/", "Tesseract data directory")
		lang      = fs.StringLong("lang", "eng", "Tesseract language")
		paddleURL = fs.StringLong("paddle-url", "", "PaddleOCR endpoint used when Tesseract finds nothing (optional)")
		logLevel  = fs.StringLong("log-level", "warn", "Log level")
		pretty    = fs.BoolLong("pretty", "Indent JSON output")
	)

	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("AMOUNTSCAN")); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	logger.Init(*logLevel, false)

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	metrics := service.NewScanMetrics(nil)

	if *text != "" {
		if len(fs.GetArgs()) != 0 {
			return errUsage
		}
		svc := service.NewScanService(nil, nil, nil, metrics)
		return enc.Encode(svc.ExtractText(*text))
	}

	if len(fs.GetArgs()) != 1 {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		return errUsage
	}
	path := fs.GetArgs()[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var fallback service.OCREngine
	if paddle := client.NewPaddleClient(*paddleURL, 30*time.Second); paddle != nil {
		fallback = paddle
	}

	svc := service.NewScanService(
		client.NewTesseractClient(*tessdata, *lang, ""),
		fallback,
		service.NewPDFProcessor(),
		metrics,
	)

	resp, err := svc.Scan(ctx, service.ScanInput{
		Data:     data,
		Filename: filepath.Base(path),
		Password: *password,
	})
	if err != nil {
		return err
	}
	return enc.Encode(resp)
}
