package serialization

import (
	"encoding/binary"
	"io"

	"github.com/kaspanet/blocktree/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// WriteElement writes the little endian representation of element to w.
// Byte slices are written with a uint64 length prefix.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		return putUint32(w, uint32(e))

	case uint32:
		return putUint32(w, e)

	case int64:
		return putUint64(w, uint64(e))

	case uint64:
		return putUint64(w, e)

	case uint8:
		return write(w, []byte{e})

	case bool:
		if e {
			return write(w, []byte{0x01})
		}
		return write(w, []byte{0x00})

	case []byte:
		err := putUint64(w, uint64(len(e)))
		if err != nil {
			return err
		}
		return write(w, e)

	case externalapi.DomainHash:
		return write(w, e.ByteSlice())

	case *externalapi.DomainHash:
		return write(w, e.ByteSlice())

	case externalapi.DomainTransactionID:
		return write(w, e.ByteSlice())

	case *externalapi.DomainTransactionID:
		return write(w, e.ByteSlice())
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to writeElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

func putUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	return write(w, buf[:])
}

func putUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], val)
	return write(w, buf[:])
}

func write(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return errors.WithStack(err)
}
