package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type fakePropertyStorage struct {
	mu         sync.Mutex
	properties map[uuid.UUID]domain.Property
	blobKeys   []string
	createErr  error
	listCalls  int
}

func newFakePropertyStorage(existing ...domain.Property) *fakePropertyStorage {
	s := &fakePropertyStorage{properties: make(map[uuid.UUID]domain.Property)}
	for _, p := range existing {
		s.properties[p.ID] = p
	}
	return s
}

func (s *fakePropertyStorage) Create(_ context.Context, p domain.Property) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return domain.Property{}, s.createErr
	}
	s.properties[p.ID] = p
	return p, nil
}

func (s *fakePropertyStorage) Update(_ context.Context, id uuid.UUID, patch domain.PropertyPatch) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return domain.Property{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, id)
	}
	updated := patch.Apply(p)
	s.properties[id] = updated
	return updated, nil
}

func (s *fakePropertyStorage) GetByID(_ context.Context, id uuid.UUID) (domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.properties[id]
	if !ok {
		return domain.Property{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, id)
	}
	return p, nil
}

func (s *fakePropertyStorage) List(context.Context) ([]domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]domain.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePropertyStorage) Delete(_ context.Context, id uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, id)
	}
	delete(s.properties, id)
	return s.blobKeys, nil
}

type fakeNoteStorage struct {
	mu      sync.Mutex
	notes   map[uuid.UUID]domain.Note
	created []domain.Note
}

func newFakeNoteStorage(existing ...domain.Note) *fakeNoteStorage {
	s := &fakeNoteStorage{notes: make(map[uuid.UUID]domain.Note)}
	for _, n := range existing {
		s.notes[n.ID] = n
	}
	return s
}

func (s *fakeNoteStorage) Create(_ context.Context, n domain.Note) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n
	s.created = append(s.created, n)
	return n, nil
}

func (s *fakeNoteStorage) Update(_ context.Context, id uuid.UUID, body string) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, id)
	}
	n.Body = body
	s.notes[id] = n
	return n, nil
}

func (s *fakeNoteStorage) Delete(_ context.Context, id uuid.UUID) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, id)
	}
	delete(s.notes, id)
	return n, nil
}

func (s *fakeNoteStorage) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Note
	for _, n := range s.notes {
		if n.PropertyID == propertyID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *fakeNoteStorage) CountsByProperty(context.Context) (map[uuid.UUID]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]int)
	for _, n := range s.notes {
		out[n.PropertyID]++
	}
	return out, nil
}

type fakeAttachmentStorage struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]domain.Attachment
	byHash    *domain.Attachment
	createErr error
}

func newFakeAttachmentStorage() *fakeAttachmentStorage {
	return &fakeAttachmentStorage{rows: make(map[uuid.UUID]domain.Attachment)}
}

func (s *fakeAttachmentStorage) Create(_ context.Context, a domain.Attachment) (domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return domain.Attachment{}, s.createErr
	}
	s.rows[a.ID] = a
	return a, nil
}

func (s *fakeAttachmentStorage) GetByID(_ context.Context, id uuid.UUID) (domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return domain.Attachment{}, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, id)
	}
	return a, nil
}

func (s *fakeAttachmentStorage) Delete(_ context.Context, id uuid.UUID) (domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return domain.Attachment{}, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, id)
	}
	delete(s.rows, id)
	return a, nil
}

func (s *fakeAttachmentStorage) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Attachment
	for _, a := range s.rows {
		if a.PropertyID == propertyID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAttachmentStorage) FindByHash(context.Context, uuid.UUID, string) (*domain.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byHash, nil
}

type fakeBlobStore struct {
	mu        sync.Mutex
	uploads   map[string]string // key -> content type
	deleted   []string
	uploadErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: make(map[string]string)}
}

func (b *fakeBlobStore) Upload(_ context.Context, key, contentType string, _ []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.uploads[key] = contentType
	return nil
}

func (b *fakeBlobStore) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobStore) PublicURL(key string) string {
	return "https://blobs.test/" + key
}

type fakeMediaProcessor struct {
	hash     string
	hashErr  error
	thumb    []byte
	thumbErr error
}

func (m *fakeMediaProcessor) Thumbnail([]byte, uint) ([]byte, error) {
	if m.thumbErr != nil {
		return nil, m.thumbErr
	}
	return m.thumb, nil
}

func (m *fakeMediaProcessor) PerceptualHash([]byte) (string, error) {
	if m.hashErr != nil {
		return "", m.hashErr
	}
	return m.hash, nil
}

type fakeDeltaPublisher struct {
	mu         sync.Mutex
	nonce      uint64
	published  []domain.NoteCountDelta
	publishErr error
}

func (p *fakeDeltaPublisher) PublishNoteCountDelta(_ context.Context, delta domain.NoteCountDelta) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, delta)
	return nil
}

func (p *fakeDeltaPublisher) NextNonce() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nonce++
	return p.nonce
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.DashboardEvent
}

func (n *fakeNotifier) Notify(_ context.Context, event domain.DashboardEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *fakeNotifier) typesSeen() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

type fakePageFetcher struct {
	text string
	err  error
}

func (f *fakePageFetcher) FetchText(context.Context, string, int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeListingExtractor struct {
	extracted domain.ExtractedProperty
	err       error
	calls     int
}

func (e *fakeListingExtractor) Extract(context.Context, string, string) (domain.ExtractedProperty, error) {
	e.calls++
	if e.err != nil {
		return domain.ExtractedProperty{}, e.err
	}
	return e.extracted, nil
}
