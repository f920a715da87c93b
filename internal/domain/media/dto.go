// internal/domain/media/dto.go
package media

import "time"

// View is the client-facing shape of a media record. The stored object key is
// deliberately absent; clients only ever see the public URL.
type View struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Upload carries a validated file into the create path.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

func (r *Record) ToView() *View {
	return &View{
		ID:        r.ID,
		FileName:  r.FileName,
		FileType:  r.ContentType,
		FileSize:  r.Size,
		URL:       r.URL,
		CreatedAt: r.CreatedAt,
	}
}

func ToViews(records []*Record) []*View {
	views := make([]*View, 0, len(records))
	for _, r := range records {
		views = append(views, r.ToView())
	}
	return views
}
