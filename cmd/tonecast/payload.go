package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"Tonecast/internal/broadcast"
	"Tonecast/pkg/modem"
	"Tonecast/pkg/packet"
)

type payloadFlags struct {
	file      string
	kind      string
	timestamp bool
}

func (p *payloadFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "read the payload from a file (\"-\" for stdin)")
	cmd.Flags().StringVar(&p.kind, "packet", "", "wrap the payload in a packet of this kind (TXT, WEB, IMG, YT)")
	cmd.Flags().BoolVar(&p.timestamp, "timestamp", false, "prefix the payload with the UTC time")
}

// source builds the payload source from the positional text or --file.
func (p *payloadFlags) source(cmd *cobra.Command, args []string, secret []byte) (broadcast.Source, error) {
	var src broadcast.Source
	switch {
	case p.file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		src = broadcast.Static(modem.NormalizeText(string(b)))
	case p.file != "":
		if len(args) > 0 {
			return nil, errors.New("pass either text arguments or --file, not both")
		}
		src = broadcast.File(p.file)
	case len(args) > 0:
		src = broadcast.Static(strings.Join(args, " "))
	default:
		return nil, errors.New("no payload: pass text arguments or --file")
	}

	if p.timestamp {
		src = broadcast.Timestamped(src, time.Now)
	}
	if p.kind != "" {
		src = broadcast.Packet(strings.ToUpper(p.kind), src, secret)
	}
	return src, nil
}

// describe renders decoded text, unpacking packets when possible.
func describe(text string, secret []byte) string {
	p, err := packet.Parse(text)
	if err != nil {
		return text
	}
	kind := p.Kind
	if _, signed := p.Get(packet.ChecksumKey); signed && !p.Verify() {
		kind += " CRC MISMATCH"
	}
	data, ok := p.Get("DATA")
	if !ok {
		return p.String()
	}
	if opened, err := packet.Open(data, secret); err == nil {
		data = opened
	}
	return fmt.Sprintf("[%s] %s", kind, data)
}

func fetch(ctx context.Context, src broadcast.Source) (string, error) {
	text, err := src(ctx)
	if err != nil {
		return "", fmt.Errorf("payload: %w", err)
	}
	return text, nil
}
