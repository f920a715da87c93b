package media

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	mediadomain "mediahub-service/internal/domain/media"
	xerrors "mediahub-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// fakeRepo is an in-memory media.Repository with the same single-winner
// delete semantics as the Mongo implementation.
type fakeRepo struct {
	mu        sync.Mutex
	records   []*mediadomain.Record
	insertErr error
}

func (f *fakeRepo) Insert(ctx context.Context, r *mediadomain.Record) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
	return nil
}

func (f *fakeRepo) ListByOwner(ctx context.Context, ownerID string) ([]*mediadomain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*mediadomain.Record, 0)
	// Newest first: walk insertion order backwards.
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].OwnerID == ownerID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeRepo) DeleteOwned(ctx context.Context, ownerID, recordID string) (*mediadomain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.records {
		if r.ID == recordID && r.OwnerID == ownerID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return r, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

// fakeBlob records puts and deletes.
type fakeBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string
	putErr  error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: map[string][]byte{}}
}

func (f *fakeBlob) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return "http://cdn.local/" + key, nil
}

func (f *fakeBlob) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deletes = append(f.deletes, key)
	return nil
}

func newTestService(repo *fakeRepo, blob *fakeBlob) *MediaService {
	return NewMediaService(repo, blob, zap.NewNop())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int64
		wantCode    string
	}{
		{"jpeg ok", "image/jpeg", 1024, ""},
		{"png ok", "image/png", 2 << 20, ""},
		{"gif ok", "image/gif", 10, ""},
		{"mp4 ok", "video/mp4", MaxFileSize, ""},
		{"webm ok", "video/webm", 1, ""},
		{"pdf rejected", "application/pdf", 1024, xerrors.CodeUnsupportedType},
		{"wildcard rejected", "image/*", 1024, xerrors.CodeUnsupportedType},
		{"near match rejected", "image/jpg", 1024, xerrors.CodeUnsupportedType},
		{"empty type rejected", "", 1024, xerrors.CodeUnsupportedType},
		{"too large", "video/mp4", MaxFileSize + 1, xerrors.CodeTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.contentType, tc.size)
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate returned %v, want accept", err)
				}
				return
			}

			rej, ok := xerrors.AsRejection(err)
			if !ok {
				t.Fatalf("Validate returned %v, want Rejection(%s)", err, tc.wantCode)
			}
			if rej.Code != tc.wantCode {
				t.Errorf("rejection code = %q, want %q", rej.Code, tc.wantCode)
			}
		})
	}
}

func TestCreateStoresBlobAndRecord(t *testing.T) {
	repo := &fakeRepo{}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)

	data := bytes.Repeat([]byte{0xAB}, 2<<20)
	record, err := svc.Create(context.Background(), "owner-1", &mediadomain.Upload{
		FileName:    "holiday.png",
		ContentType: "image/png",
		Size:        int64(len(data)),
		Data:        data,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if record.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", record.ContentType)
	}
	if record.FileName != "holiday.png" {
		t.Errorf("FileName = %q", record.FileName)
	}
	if record.StoredName == "" || record.StoredName == "holiday.png" {
		t.Errorf("stored name must be system-generated, got %q", record.StoredName)
	}
	if _, ok := blob.objects[record.StoredName]; !ok {
		t.Error("blob not written under the stored key")
	}

	records, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].ID != record.ID {
		t.Fatalf("List = %+v, want the new record exactly once", records)
	}
}

func TestCreateRejectedLeavesNothingBehind(t *testing.T) {
	repo := &fakeRepo{}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)

	_, err := svc.Create(context.Background(), "owner-1", &mediadomain.Upload{
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        100,
		Data:        []byte("%PDF"),
	})

	rej, ok := xerrors.AsRejection(err)
	if !ok || rej.Code != xerrors.CodeUnsupportedType {
		t.Fatalf("err = %v, want UnsupportedType rejection", err)
	}
	if len(blob.objects) != 0 {
		t.Error("rejected upload must not write a blob")
	}
	if len(repo.records) != 0 {
		t.Error("rejected upload must not create a record")
	}
}

func TestCreateCompensatesFailedInsert(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("mongo down")}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)

	_, err := svc.Create(context.Background(), "owner-1", &mediadomain.Upload{
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		Size:        4,
		Data:        []byte{1, 2, 3, 4},
	})

	if !xerrors.Is(err, xerrors.ErrStorageFailure) {
		t.Fatalf("err = %v, want ErrStorageFailure", err)
	}
	if len(blob.objects) != 0 {
		t.Error("blob written for a failed insert must be removed again")
	}
	if len(blob.deletes) != 1 {
		t.Errorf("expected exactly one compensating delete, got %d", len(blob.deletes))
	}
}

func TestListNewestFirst(t *testing.T) {
	repo := &fakeRepo{}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", &mediadomain.Upload{
		FileName: "a.png", ContentType: "image/png", Size: 1, Data: []byte{1},
	})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(ctx, "owner-1", &mediadomain.Upload{
		FileName: "b.png", ContentType: "image/png", Size: 1, Data: []byte{2},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID != second.ID || records[1].ID != first.ID {
		t.Error("records must be ordered newest first")
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := &fakeRepo{}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", &mediadomain.Upload{
		FileName: "a.png", ContentType: "image/png", Size: 1, Data: []byte{1},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Another principal deleting this record must see the same outcome as
	// deleting a nonexistent id.
	if err := svc.Delete(ctx, "owner-2", record.ID); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("cross-owner delete = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "owner-2", "no-such-id"); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("missing-id delete = %v, want ErrNotFound", err)
	}

	// The owner's delete succeeds and removes the blob.
	if err := svc.Delete(ctx, "owner-1", record.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(blob.objects) != 0 {
		t.Error("blob must be removed with the record")
	}

	// Second delete of the same id reports not found.
	if err := svc.Delete(ctx, "owner-1", record.ID); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("repeat delete = %v, want ErrNotFound", err)
	}
}

func TestConcurrentDeleteSingleWinner(t *testing.T) {
	repo := &fakeRepo{}
	blob := newFakeBlob()
	svc := newTestService(repo, blob)
	ctx := context.Background()

	record, err := svc.Create(ctx, "owner-1", &mediadomain.Upload{
		FileName: "a.png", ContentType: "image/png", Size: 1, Data: []byte{1},
	})
	if err != nil {
		t.Fatal(err)
	}

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Delete(ctx, "owner-1", record.ID)
		}()
	}
	wg.Wait()
	close(results)

	var wins, notFound int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case xerrors.Is(err, xerrors.ErrNotFound):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Errorf("wins = %d, want exactly 1", wins)
	}
	if notFound != attempts-1 {
		t.Errorf("notFound = %d, want %d", notFound, attempts-1)
	}
}
