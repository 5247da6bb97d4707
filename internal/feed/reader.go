package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"treasury_go/internal/event"
)

// Source is one feed file of a given type.
type Source struct {
	Type event.Type
	Path string
}

// ParseErrorRecorder counts skipped lines.
type ParseErrorRecorder interface {
	RecordParseError()
}

// Reader turns feed files into sequenced events. Sequence numbers are gap-free
// across all sources: skipped lines do not consume one.
type Reader struct {
	parser  *Parser
	errs    ParseErrorRecorder
	nextSeq uint64
}

func NewReader(parser *Parser, errs ParseErrorRecorder) *Reader {
	return &Reader{parser: parser, errs: errs, nextSeq: 1}
}

// Run reads every source in order and closes out when done or when ctx is cancelled.
// A missing file is logged and skipped.
func (r *Reader) Run(ctx context.Context, sources []Source, out chan<- event.Event) error {
	defer close(out)

	for _, src := range sources {
		f, err := os.Open(src.Path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				slog.Warn("⚠️ Feed file missing, skipping", slog.String("path", src.Path), slog.String("type", src.Type.String()))
				continue
			}
			return fmt.Errorf("open feed %s: %w", src.Path, err)
		}

		slog.Info("📥 Reading feed", slog.String("path", src.Path), slog.String("type", src.Type.String()))
		err = r.ReadFrom(ctx, src.Type, f, out)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom parses every line of in as typ and sends the events to out.
func (r *Reader) ReadFrom(ctx context.Context, typ event.Type, in io.Reader, out chan<- event.Event) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		ev, err := r.parse(typ, line, lineNo)
		if err != nil {
			slog.Warn("Skipping malformed feed line",
				slog.String("type", typ.String()),
				slog.Int("line", lineNo),
				slog.Any("error", err),
			)
			if r.errs != nil {
				r.errs.RecordParseError()
			}
			continue
		}

		select {
		case <-ctx.Done():
			event.Release(ev)
			return ctx.Err()
		case out <- ev:
			r.nextSeq++
		}
	}
	return scanner.Err()
}

func (r *Reader) parse(typ event.Type, line string, lineNo int) (event.Event, error) {
	base := event.BaseEvent{Seq: r.nextSeq, Line: lineNo}

	switch typ {
	case event.TypeMarketData:
		ob, err := r.parser.ParseOrderBook(line)
		if err != nil {
			return nil, err
		}
		ev := event.AcquireMarketDataEvent()
		ev.BaseEvent = base
		ev.Book = ob
		return ev, nil

	case event.TypePrice:
		p, err := r.parser.ParsePrice(line)
		if err != nil {
			return nil, err
		}
		ev := event.AcquirePriceEvent()
		ev.BaseEvent = base
		ev.Price = p
		return ev, nil

	case event.TypeTrade:
		t, err := r.parser.ParseTrade(line)
		if err != nil {
			return nil, err
		}
		return &event.TradeEvent{BaseEvent: base, Trade: t}, nil

	case event.TypeInquiry:
		inq, err := r.parser.ParseInquiry(line)
		if err != nil {
			return nil, err
		}
		return &event.InquiryEvent{BaseEvent: base, Inquiry: inq}, nil

	default:
		return nil, fmt.Errorf("unsupported feed type %d", typ)
	}
}
