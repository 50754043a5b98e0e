package leadpage

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

var (
	leadHeader = []string{
		"created_at_utc", "name", "email", "company", "website",
		"budget", "goal", "message", "source", "ip", "user_agent",
	}
	subscriberHeader = []string{
		"created_at_utc", "email", "source", "ip", "user_agent",
	}
)

// recordFile is one append-only CSV file. The mutex serializes appends so
// concurrent submissions can never interleave partial rows.
type recordFile struct {
	mu     sync.Mutex
	path   string
	header []string
}

// RecordStore persists lead and subscriber records to two append-only CSV
// files. Files are opened, header-checked, appended to, and closed per
// write, so every submission is flushed independently and a crash can only
// truncate the in-flight row, never corrupt prior ones.
type RecordStore struct {
	leads       recordFile
	subscribers recordFile
}

// NewRecordStore creates a store writing leads and subscribers to the
// given paths. Files are created lazily on first append.
func NewRecordStore(leadsPath, newsletterPath string) *RecordStore {
	return &RecordStore{
		leads:       recordFile{path: leadsPath, header: leadHeader},
		subscribers: recordFile{path: newsletterPath, header: subscriberHeader},
	}
}

// AppendLead appends a lead record, creating the file with its header row
// first if needed. I/O errors propagate to the caller.
func (s *RecordStore) AppendLead(r LeadRecord) error {
	return s.leads.append([]string{
		r.CreatedAt, r.Name, r.Email, r.Company, r.Website,
		r.Budget, r.Goal, r.Message, r.Source, r.IP, r.UserAgent,
	})
}

// AppendSubscriber appends a newsletter signup record.
func (s *RecordStore) AppendSubscriber(r SubscriberRecord) error {
	return s.subscribers.append([]string{
		r.CreatedAt, r.Email, r.Source, r.IP, r.UserAgent,
	})
}

func (f *recordFile) append(row []string) error {
	if len(row) != len(f.header) {
		return fmt.Errorf("store: row has %d fields, header has %d", len(row), len(f.header))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", f.path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("store: stat %s: %w", f.path, err)
	}

	w := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := w.Write(f.header); err != nil {
			return fmt.Errorf("store: write header %s: %w", f.path, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("store: write row %s: %w", f.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: flush %s: %w", f.path, err)
	}
	return nil
}
