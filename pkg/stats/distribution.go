package stats

import (
	"bytes"
	"sort"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

type (
	// Distribution counts occurrences of string keys and remembers the order
	// in which each key was first seen. Empty keys are never counted.
	Distribution struct {
		counts map[string]int
		order  []string
	}

	// Entry is one key of a Distribution with its count
	Entry struct {
		Key   string `json:"key"`
		Count int    `json:"count"`
	}
)

// NewDistribution returns an empty Distribution
func NewDistribution() *Distribution {
	return &Distribution{counts: make(map[string]int)}
}

// Add counts one occurrence of key
func (d *Distribution) Add(key string) {
	d.AddN(key, 1)
}

// AddN counts n occurrences of key
func (d *Distribution) AddN(key string, n int) {
	if key == "" || n <= 0 {
		return
	}
	if d.counts == nil {
		d.counts = make(map[string]int)
	}
	if _, ok := d.counts[key]; !ok {
		d.order = append(d.order, key)
	}
	d.counts[key] += n
}

// Count returns how many times key was added
func (d *Distribution) Count(key string) int {
	if d == nil {
		return 0
	}
	return d.counts[key]
}

// Len returns the number of distinct keys
func (d *Distribution) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Total returns the sum of all counts
func (d *Distribution) Total() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// MostCommon returns up to n entries ordered by count, highest first.
// Equal counts keep first-seen order. n below one returns every entry.
func (d *Distribution) MostCommon(n int) []Entry {
	if d == nil {
		return []Entry{}
	}
	entries := make([]Entry, 0, len(d.order))
	for _, key := range d.order {
		entries = append(entries, Entry{Key: key, Count: d.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Entries returns every entry, most common first
func (d *Distribution) Entries() []Entry {
	return d.MostCommon(0)
}

// MarshalJSON renders the distribution as an object whose keys appear most
// common first
func (d *Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range d.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(entry.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
