// SPDX-License-Identifier: Apache-2.0

// Package moscollection assembles an unordered batch of MOS messages into a
// single merged running order. Batch shape validation is strict; applying
// the batch's content is best-effort, with failures recorded as diagnostics.
package moscollection

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/bbc/mosromgr-sub000/internal/log"
	"github.com/bbc/mosromgr-sub000/pkg/mostype"
)

var logger = log.WithComponent("moscollection")

// ByteFetcher supplies raw message bytes per object key. The collection is
// agnostic to the retrieval mechanism behind it.
type ByteFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Options configure collection construction and merging.
type Options struct {
	// AllowIncomplete permits a batch without a terminal roDelete.
	AllowIncomplete bool

	// NonStrict downgrades fatal merge failures to recorded diagnostics
	// instead of aborting the batch. Closed-document merge attempts are
	// never downgraded.
	NonStrict bool

	// Sink, when set, additionally receives every diagnostic the
	// collection records.
	Sink mostype.Sink
}

// Reader is a lightweight handle on one classified message: enough to sort
// and validate the batch without holding every parsed tree in memory, plus
// a restore function to re-parse the message when it is merged.
type Reader struct {
	messageID int
	roID      string
	kind      mostype.Kind
	source    string
	restore   func() (*mostype.Message, error)
}

// MessageID returns the message's total order key.
func (r *Reader) MessageID() int { return r.messageID }

// ROID returns the message's running order ID.
func (r *Reader) ROID() string { return r.roID }

// Kind returns the classified message kind.
func (r *Reader) Kind() mostype.Kind { return r.kind }

// Source returns the file path, object key or other origin label.
func (r *Reader) Source() string { return r.source }

// Restore re-parses the message from its source.
func (r *Reader) Restore() (*mostype.Message, error) { return r.restore() }

// Collection owns the running order being built and the sorted, validated
// set of readers to merge into it. It exclusively owns the running order for
// the duration of a merge run.
type Collection struct {
	ro        *mostype.RunningOrder
	readers   []*Reader
	opts      Options
	collector *mostype.Collector
}

// FromFiles constructs a collection from MOS file paths.
func FromFiles(paths []string, opts Options) (*Collection, error) {
	logger.Info().Int(log.FieldCount, len(paths)).Msg("building collection from files")
	c := newCollection(opts)
	var readers []*Reader
	for _, path := range paths {
		path := path
		readers = c.appendReader(readers, path, func() (*mostype.Message, error) {
			return mostype.FromFile(path)
		})
	}
	return c.assemble(readers)
}

// FromStrings constructs a collection from MOS document XML strings.
func FromStrings(contents []string, opts Options) (*Collection, error) {
	logger.Info().Int(log.FieldCount, len(contents)).Msg("building collection from strings")
	c := newCollection(opts)
	var readers []*Reader
	for i, s := range contents {
		s := s
		label := fmt.Sprintf("string %d", i)
		readers = c.appendReader(readers, label, func() (*mostype.Message, error) {
			return mostype.FromString(s)
		})
	}
	return c.assemble(readers)
}

// FromKeys constructs a collection by fetching each object key through the
// supplied fetcher.
func FromKeys(ctx context.Context, fetcher ByteFetcher, keys []string, opts Options) (*Collection, error) {
	logger.Info().Int(log.FieldCount, len(keys)).Msg("building collection from object keys")
	c := newCollection(opts)
	var readers []*Reader
	for _, key := range keys {
		key := key
		restore := func() (*mostype.Message, error) {
			b, err := fetcher.Fetch(ctx, key)
			if err != nil {
				return nil, err
			}
			return mostype.FromBytes(b)
		}
		readers = c.appendReader(readers, key, restore)
	}
	return c.assemble(readers)
}

func newCollection(opts Options) *Collection {
	return &Collection{opts: opts, collector: &mostype.Collector{}}
}

func (c *Collection) record(d mostype.Diagnostic) {
	c.collector.Record(d)
	if c.opts.Sink != nil {
		c.opts.Sink.Record(d)
	}
}

// appendReader classifies one source. Sources that fail to parse or
// classify are dropped with a diagnostic; ignored message types are dropped
// silently.
func (c *Collection) appendReader(readers []*Reader, source string, restore func() (*mostype.Message, error)) []*Reader {
	m, err := restore()
	if err != nil {
		if errors.Is(err, mostype.ErrIgnoredType) {
			return readers
		}
		logger.Warn().Str(log.FieldSource, source).Err(err).Msg("dropping message")
		c.record(mostype.Diagnostic{
			Class:  mostype.ClassSkippedMessage,
			Source: source,
			Detail: err.Error(),
		})
		return readers
	}
	return append(readers, &Reader{
		messageID: m.MessageID(),
		roID:      m.ROID(),
		kind:      m.Kind(),
		source:    source,
		restore:   restore,
	})
}

// assemble validates batch shape and fixes the merge order. All shape
// violations are fatal and raised before any merge is attempted.
func (c *Collection) assemble(readers []*Reader) (*Collection, error) {
	var creates, rest []*Reader
	deletes := 0
	for _, r := range readers {
		switch r.kind {
		case mostype.KindRunningOrder:
			creates = append(creates, r)
		case mostype.KindRunningOrderEnd:
			deletes++
			rest = append(rest, r)
		default:
			rest = append(rest, r)
		}
	}
	if len(creates) != 1 {
		return nil, fmt.Errorf("%w: %d roCreates found", ErrInvalidCollection, len(creates))
	}
	if deletes > 1 {
		return nil, fmt.Errorf("%w: %d roDeletes found", ErrInvalidCollection, deletes)
	}
	if deletes == 0 && !c.opts.AllowIncomplete {
		return nil, fmt.Errorf("%w: no roDelete found", ErrInvalidCollection)
	}

	createMsg, err := creates[0].Restore()
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", creates[0].source, err)
	}
	ro, err := mostype.NewRunningOrder(createMsg)
	if err != nil {
		return nil, err
	}
	for _, r := range rest {
		if r.roID != ro.ROID() {
			return nil, fmt.Errorf("%w: mixed RO IDs found (%s has %q, expected %q)",
				ErrInvalidCollection, r.source, r.roID, ro.ROID())
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].messageID < rest[j].messageID
	})
	c.ro = ro
	c.readers = rest
	return c, nil
}

// RO returns the collection's running order.
func (c *Collection) RO() *mostype.RunningOrder { return c.ro }

// ROID returns the running order ID.
func (c *Collection) ROID() string { return c.ro.ROID() }

// Slug returns the running order slug.
func (c *Collection) Slug() string { return c.ro.Slug() }

// Completed reports whether the terminal message has been merged.
func (c *Collection) Completed() bool { return c.ro.Completed() }

// Readers returns the sorted non-create readers.
func (c *Collection) Readers() []*Reader { return c.readers }

// Diagnostics returns every diagnostic recorded while building and merging.
func (c *Collection) Diagnostics() []mostype.Diagnostic {
	return c.collector.Diagnostics()
}

// String returns the XML text of the merged running order.
func (c *Collection) String() string { return c.ro.String() }

// Merge applies every reader's message to the running order in message ID
// order. In strict mode the first fatal merge failure aborts; in non-strict
// mode it is recorded and the batch continues, except for closed-document
// attempts which always abort.
func (c *Collection) Merge() error {
	logger.Info().Int(log.FieldCount, len(c.readers)).Str(log.FieldRoID, c.ro.ROID()).
		Msg("merging collection")
	sink := mostype.Sink(c.collector)
	if c.opts.Sink != nil {
		sink = teeSink{c.collector, c.opts.Sink}
	}
	for _, r := range c.readers {
		m, err := r.Restore()
		if err != nil {
			return fmt.Errorf("restore %s: %w", r.source, err)
		}
		logger.Debug().
			Str(log.FieldKind, r.kind.String()).
			Int(log.FieldMessageID, r.messageID).
			Msg("merging message")
		if err := m.Merge(c.ro, sink); err != nil {
			if !c.opts.NonStrict || errors.Is(err, mostype.ErrCompletedMerge) {
				return err
			}
			logger.Error().Str(log.FieldSource, r.source).Err(err).Msg("merge downgraded")
			c.record(mostype.Diagnostic{
				Class:     mostype.ClassMergeDowngraded,
				Kind:      r.kind,
				MessageID: r.messageID,
				Source:    r.source,
				Detail:    err.Error(),
			})
		}
	}
	logger.Info().Int(log.FieldCount, len(c.readers)).Msg("completed merging collection")
	return nil
}

type teeSink struct {
	a, b mostype.Sink
}

func (t teeSink) Record(d mostype.Diagnostic) {
	t.a.Record(d)
	t.b.Record(d)
}
