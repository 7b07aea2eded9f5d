package project

import (
	"beacon/bizerror"
	"beacon/client/oss"
	"beacon/common"
	"beacon/domain"
	"beacon/event"
	"context"
	"io"
	"strings"

	"github.com/fundwit/go-commons/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	fileIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AttachFileFunc  = AttachFile
	FileContentFunc = FileContent
)

// AttachFile uploads the content to the attachment bucket first and only
// records the metadata on the project once the upload succeeded, so a failed
// upload leaves the collection unchanged. The upload runs outside the store
// mutex, other operations are not stalled behind a slow bucket call. Unknown
// project id is a silent no-op returning nil.
func AttachFile(projectId types.ID, name, contentType string, size int64, content io.Reader,
	actor string, ctx context.Context) (*domain.FileMeta, error) {

	mutex.Lock()
	known := findProject(projectId) != nil
	mutex.Unlock()
	if !known {
		return nil, nil
	}

	storageKey := "attachments/" + projectId.String() + "/" + strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := oss.PutObjectFunc(storageKey, content, ctx); err != nil {
		return nil, err
	}

	mutex.Lock()
	p := findProject(projectId)
	if p == nil {
		// purged while uploading, drop the orphaned object
		mutex.Unlock()
		if oss.DeleteObjectFunc != nil {
			if err := oss.DeleteObjectFunc(storageKey, ctx); err != nil {
				logrus.Warnf("delete orphaned object %s: %v", storageKey, err)
			}
		}
		return nil, nil
	}

	now := types.CurrentTimestamp()
	file := domain.FileMeta{
		ID:          common.NextId(fileIdWorker),
		Name:        name,
		ContentType: contentType,
		Size:        size,
		UploadTime:  now,
		StorageKey:  storageKey,
	}
	p.Files = append(p.Files, file)

	ev := appendHistory(p, event.CategoryExtensionUpdated, "file.attached", "file attached: "+name, actor, now)

	persist(ctx)
	mutex.Unlock()

	notifyHandlers(ev)
	return &file, nil
}

// FileContent streams the stored content of one attachment.
func FileContent(projectId, fileId types.ID, ctx context.Context) (io.ReadCloser, *domain.FileMeta, error) {
	mutex.Lock()
	p := findProject(projectId)
	var file *domain.FileMeta
	if p != nil {
		for i := range p.Files {
			if p.Files[i].ID == fileId {
				f := p.Files[i]
				file = &f
				break
			}
		}
	}
	mutex.Unlock()

	if file == nil {
		return nil, nil, bizerror.ErrNotFound
	}

	r, err := oss.GetObjectFunc(file.StorageKey, ctx)
	if err != nil {
		return nil, nil, err
	}
	return r, file, nil
}

// cleanProjectFiles removes the stored objects of a purged project, best
// effort: the project is already gone, a leftover object only wastes bucket
// space.
func cleanProjectFiles(p *domain.Project, ctx context.Context) {
	if oss.DeleteObjectFunc == nil {
		return
	}
	for _, f := range p.Files {
		if err := oss.DeleteObjectFunc(f.StorageKey, ctx); err != nil {
			logrus.Warnf("delete object %s of purged project %d: %v", f.StorageKey, p.ID, err)
		}
	}
}
