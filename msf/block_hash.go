package msf

import (
	"fmt"
	"sort"

	"github.com/msgstudio/lms/byteorder"
	"github.com/msgstudio/lms/errs"
)

// HashTableBlock is a hash table mapping labels to u32 values,
// bucketed by the fixed label-hash function, per spec.md §4.3. Used
// for CLB1, ALB1, SLB1, LBL1, FEN1. SlotCount is preserved across a
// parse/emit round trip even when it doesn't equal len(Entries).
type HashTableBlock struct {
	SlotCount uint32
	Entries   []HashEntry
}

// HashEntry is a single label -> value mapping.
type HashEntry struct {
	Label string
	Value uint32
}

const hashMultiplier = 0x492

// labelHash computes the bucket-assignment hash over label's UTF-8
// code units: h = h*0x492 + c (mod 2^32), folded to slotCount by a
// final modulo. This exact formula is a wire-format requirement, not
// a general-purpose hash, so it cannot be swapped for a library hash.
func labelHash(label string, slotCount uint32) uint32 {
	var h uint32
	for i := 0; i < len(label); i++ {
		h = h*hashMultiplier + uint32(label[i])
	}
	if slotCount == 0 {
		return 0
	}
	return h % slotCount
}

func parseHashTable(data []byte, ord byteorder.Order, _ byteorder.TextEncoding) (Block, error) {
	if len(data) < 4 {
		return nil, errs.ErrTruncated
	}
	slotCount := ord.Uint32(data[0:4])

	type slot struct {
		labelCount uint32
		offset     uint32
	}
	slots := make([]slot, slotCount)
	pos := 4
	for i := uint32(0); i < slotCount; i++ {
		if pos+8 > len(data) {
			return nil, fmt.Errorf("slot %d header: %w", i, errs.ErrTruncated)
		}
		slots[i] = slot{
			labelCount: ord.Uint32(data[pos : pos+4]),
			offset:     ord.Uint32(data[pos+4 : pos+8]),
		}
		pos += 8
	}

	var entries []HashEntry
	for si, s := range slots {
		off := int(s.offset)
		for j := uint32(0); j < s.labelCount; j++ {
			if off >= len(data) {
				return nil, fmt.Errorf("slot %d label %d: %w", si, j, errs.ErrTruncated)
			}
			length := int(data[off])
			off++
			if off+length+4 > len(data) {
				return nil, fmt.Errorf("slot %d label %d: %w", si, j, errs.ErrTruncated)
			}
			label := string(data[off : off+length])
			off += length
			value := ord.Uint32(data[off : off+4])
			off += 4
			entries = append(entries, HashEntry{Label: label, Value: value})
		}
	}

	return HashTableBlock{SlotCount: slotCount, Entries: entries}, nil
}

func (b HashTableBlock) Marshal(ord byteorder.Order, _ byteorder.TextEncoding) []byte {
	slotCount := b.SlotCount
	if slotCount == 0 {
		slotCount = 1
	}

	buckets := make([][]HashEntry, slotCount)
	for _, e := range b.Entries {
		slot := labelHash(e.Label, slotCount)
		buckets[slot] = append(buckets[slot], e)
	}
	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Label < bucket[j].Label })
	}

	header := make([]byte, 4+8*int(slotCount))
	ord.PutUint32(header[0:4], slotCount)

	var body []byte
	bodyBase := len(header)
	for i, bucket := range buckets {
		slotHdrOff := 4 + i*8
		ord.PutUint32(header[slotHdrOff:slotHdrOff+4], uint32(len(bucket)))
		ord.PutUint32(header[slotHdrOff+4:slotHdrOff+8], uint32(bodyBase+len(body)))
		for _, e := range bucket {
			body = append(body, byte(len(e.Label)))
			body = append(body, e.Label...)
			valBuf := make([]byte, 4)
			ord.PutUint32(valBuf, e.Value)
			body = append(body, valBuf...)
		}
	}

	return append(header, body...)
}
