package plugin

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	Ct "github.com/maroda/cyclorama/types"
)

// BadgerOutput journals issued tween commands.
// The journal is write-mostly, nothing reads it back into view state.
type BadgerOutput struct {
	MU        sync.Mutex
	DB        *badger.DB
	BatchSize int
	Buffer    []*Ct.TweenCommand
}

func NewBadgerOutput(path string, batchSize int) (*BadgerOutput, error) {
	opts := badger.DefaultOptions(path).
		WithCompression(options.ZSTD).
		WithNumVersionsToKeep(1).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerOutput failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerOutput opened",
		slog.String("path", path),
		slog.Int("batchSize", batchSize))

	return &BadgerOutput{
		DB:        db,
		BatchSize: batchSize,
		Buffer:    make([]*Ct.TweenCommand, 0, batchSize),
	}, nil
}

// WriteCommand queues up a batch of commands,
// when batchsize is reached it flushes through WriteBatch
func (bo *BadgerOutput) WriteCommand(cmd *Ct.TweenCommand) error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	bo.Buffer = append(bo.Buffer, cmd)
	if len(bo.Buffer) >= bo.BatchSize {
		return bo.flushLocked()
	}
	return nil
}

// WriteBatch performs the key/value creation to be stored
// and actually calls BadgerDB to write the data
func (bo *BadgerOutput) WriteBatch(cmds []*Ct.TweenCommand) error {
	wb := bo.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, c := range cmds {
		v, err := CommandEncode(c)
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}
		if err := wb.Set(CommandKey(c), v); err != nil {
			slog.Error("BadgerOutput failed to set key in batch",
				slog.Any("error", err),
				slog.Time("issued", c.Issued),
				slog.String("handle", c.Handle))
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerOutput failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	return nil
}

// Flush is the public method that blocks,
// it sends data to WriteBatch and then clears the buffer
func (bo *BadgerOutput) Flush() error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	if len(bo.Buffer) == 0 {
		return nil
	}
	return bo.flushLocked()
}

// flushLocked mimics Flush without locking
func (bo *BadgerOutput) flushLocked() error {
	err := bo.WriteBatch(bo.Buffer)
	bo.Buffer = bo.Buffer[:0] // Clear but keep capacity
	return err
}

// Close returns a Flush error but still attempts to close
func (bo *BadgerOutput) Close() error {
	slog.Info("BadgerOutput closing, flushing buffer",
		slog.Int("bufferSize", len(bo.Buffer)))
	flushErr := bo.Flush()
	closeErr := bo.DB.Close()

	if flushErr != nil {
		slog.Error("BadgerOutput failed to flush on close", slog.Any("error", flushErr))
		return fmt.Errorf("flush failed, close may have failed: %w", flushErr)
	}

	if closeErr != nil {
		slog.Error("BadgerOutput failed to close database", slog.Any("error", closeErr))
		return fmt.Errorf("close failed: %w", closeErr)
	}

	slog.Info("BadgerOutput closed successfully")
	return nil
}

func (bo *BadgerOutput) Type() string { return "BadgerDB" }

// CommandKey creates a composite key
// issued timestamp + sequence + first five letters of the handle
func CommandKey(cmd *Ct.TweenCommand) []byte {
	key := make([]byte, 8+8+5)

	// BigEndian keeps keys sorted chronologically in BadgerDB,
	// the sequence separates commands issued in the same batch
	binary.BigEndian.PutUint64(key[0:8], uint64(cmd.Issued.UnixNano()))
	binary.BigEndian.PutUint64(key[8:16], cmd.Seq)

	hBytes := []byte(cmd.Handle)
	n := min(len(hBytes), 5)
	copy(key[16:16+n], hBytes[:n])

	return key
}

// CommandEncode serializes the command for data storage
func CommandEncode(c *Ct.TweenCommand) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CommandDecode deserializes the command data
func CommandDecode(data []byte) (*Ct.TweenCommand, error) {
	var c Ct.TweenCommand
	err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&c)
	return &c, err
}

// QueryRange retrieves commands issued within [start, end)
func (bo *BadgerOutput) QueryRange(start, end time.Time) ([]*Ct.TweenCommand, error) {
	var cmds []*Ct.TweenCommand

	lo := make([]byte, 8)
	binary.BigEndian.PutUint64(lo, uint64(start.UnixNano()))

	err := bo.DB.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		// Keys are time ordered, so seek to start and stop at end
		for it.Seek(lo); it.Valid(); it.Next() {
			item := it.Item()
			issued := int64(binary.BigEndian.Uint64(item.Key()[0:8]))
			if issued >= end.UnixNano() {
				break
			}

			err := item.Value(func(val []byte) error {
				cmd, err := CommandDecode(val)
				if err != nil {
					slog.Error("BadgerOutput failed to decode command", slog.Any("error", err))
					return fmt.Errorf("command decode error: %w", err)
				}
				cmds = append(cmds, cmd)
				return nil
			})
			if err != nil {
				slog.Error("BadgerOutput callback failure", slog.Any("error", err))
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})

	slog.Debug("BadgerOutput QueryRange", slog.Int("count", len(cmds)))

	return cmds, err
}
