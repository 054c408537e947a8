// Package webapi provides the REST API handlers and the decision store
// backing the metadoc dashboard.
package webapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/grenas405/meta-documentation/internal/adr"
	"github.com/grenas405/meta-documentation/internal/checklist"
	"github.com/grenas405/meta-documentation/internal/workspace"
)

// ErrDecisionNotFound is returned when an id does not match any record.
var ErrDecisionNotFound = errors.New("decision not found")

// DecisionStore provides access to the decision-log data behind the API.
type DecisionStore interface {
	// ListDecisions returns all records, sorted by the given field and order.
	ListDecisions(sortField, order string) ([]DecisionSummary, error)
	// GetDecision returns a single record with its full parsed content.
	GetDecision(id string) (*DecisionDetail, error)
	// Summary returns aggregate metrics across the log.
	Summary() (*SummaryResponse, error)
}

// FileStore reads decision records from a workspace decisions directory and
// the optional compliance checklist next to it.
type FileStore struct {
	decisionsDir  string
	checklistPath string // "" when the workspace has no checklist

	mu     sync.RWMutex
	docs   map[string]*adr.Doc // keyed by uppercased record id
	loaded bool
}

// NewFileStore creates a FileStore over the given decisions directory.
// checklistPath may be empty.
func NewFileStore(decisionsDir, checklistPath string) *FileStore {
	return &FileStore{
		decisionsDir:  decisionsDir,
		checklistPath: checklistPath,
		docs:          make(map[string]*adr.Doc),
	}
}

// load parses every decision file in the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.docs = make(map[string]*adr.Doc)

	if fs.decisionsDir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.decisionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		return err
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(name)) != ".md" || workspace.IsIndexFile(name) {
			continue
		}
		doc, err := adr.Load(filepath.Join(fs.decisionsDir, name))
		if err != nil {
			continue
		}
		id := strings.TrimSpace(doc.Frontmatter.ID)
		if id == "" {
			// Use the filename (without extension) as fallback id.
			id = strings.TrimSuffix(name, filepath.Ext(name))
		}
		fs.docs[strings.ToUpper(id)] = doc
	}

	fs.loaded = true
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh parse of the decisions directory.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func docToSummary(d *adr.Doc) DecisionSummary {
	status := strings.TrimSpace(d.Frontmatter.Status)
	if st, err := adr.ParseStatus(status); err == nil {
		status = st.String()
	}
	return DecisionSummary{
		ID:     strings.TrimSpace(d.Frontmatter.ID),
		Title:  strings.TrimSpace(d.Frontmatter.Title),
		Status: status,
		Date:   strings.TrimSpace(d.Frontmatter.Date),
		Tags:   d.Frontmatter.Tags,
		File:   filepath.Base(d.Path),
	}
}

func docToDetail(d *adr.Doc) *DecisionDetail {
	return &DecisionDetail{
		DecisionSummary: docToSummary(d),
		Record:          d.Record(),
		Body:            strings.TrimSpace(d.Body),
	}
}

// ListDecisions returns all records sorted by the given field and order.
func (fs *FileStore) ListDecisions(sortField, order string) ([]DecisionSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	decisions := make([]DecisionSummary, 0, len(fs.docs))
	for _, d := range fs.docs {
		decisions = append(decisions, docToSummary(d))
	}

	sortDecisions(decisions, sortField, order)
	return decisions, nil
}

// GetDecision returns a single record with its parsed content. Lookup is
// case-insensitive on the id.
func (fs *FileStore) GetDecision(id string) (*DecisionDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	d, ok := fs.docs[strings.ToUpper(strings.TrimSpace(id))]
	if !ok {
		return nil, ErrDecisionNotFound
	}

	return docToDetail(d), nil
}

// Summary returns record counts per status plus the checklist outcome.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{StatusCounts: make(map[string]int)}
	for _, d := range fs.docs {
		resp.TotalDecisions++
		resp.StatusCounts[docToSummary(d).Status]++
	}

	if fs.checklistPath != "" {
		cs, err := checklistSummary(fs.checklistPath)
		if err != nil {
			return nil, err
		}
		resp.Checklist = cs
	}
	return resp, nil
}

func checklistSummary(path string) (*ChecklistSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading checklist: %w", err)
	}
	cl, err := checklist.Parse(data)
	if err != nil {
		return nil, err
	}
	res := checklist.Validate(cl)
	return &ChecklistSummary{
		Path:       filepath.Base(path),
		Valid:      res.Valid,
		Violations: res.Violations,
	}, nil
}

func sortDecisions(decisions []DecisionSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "status":
			return decisions[i].Status < decisions[j].Status
		case "date":
			return decisions[i].Date < decisions[j].Date
		case "title":
			return decisions[i].Title < decisions[j].Title
		default: // "id" or empty
			return decisions[i].ID < decisions[j].ID
		}
	}

	if order == "desc" {
		sort.Slice(decisions, func(i, j int) bool { return less(j, i) })
	} else {
		sort.Slice(decisions, less)
	}
}

// Ensure FileStore satisfies DecisionStore.
var _ DecisionStore = (*FileStore)(nil)
