package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var bucketPages = []byte("pages")

// Page is the stored record for one crawled document.
type Page struct {
	URL   string `json:"url"`
	Depth int    `json:"depth,omitempty"`
}

// Bolt is a page store backed by a BoltDB file: bucket "pages", keys are
// big-endian docIDs, values are JSON Page records.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens or creates a Bolt page store.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open page store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init page store %s: %w", path, err)
	}

	return &Bolt{db: db}, nil
}

func docKey(doc uint32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, doc)
	return key
}

// Put stores the page record for a document.
func (b *Bolt) Put(doc uint32, page Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPages).Put(docKey(doc), data)
	})
}

// Resolve implements Store.
func (b *Bolt) Resolve(doc uint32) (string, bool) {
	var page Page
	found := false

	b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketPages).Get(docKey(doc))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil
		}
		found = true
		return nil
	})

	if !found || page.URL == "" {
		return "", false
	}
	return page.URL, true
}

// Close releases the underlying database.
func (b *Bolt) Close() error {
	return b.db.Close()
}
