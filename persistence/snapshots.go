package persistence

import (
	"beacon/domain"
	"context"
	"encoding/json"
	"errors"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// The whole project collection is persisted as one named slot holding the
// serialized array, written through after every store mutation.

const ProjectsSlot = "projects"

type Snapshot struct {
	Slot       string          `json:"slot" gorm:"primary_key;type:VARCHAR(64)"`
	Body       string          `json:"body" sql:"type:MEDIUMTEXT"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (s *Snapshot) TableName() string {
	return "snapshots"
}

var (
	LoadCollectionFunc = LoadCollection
	SaveCollectionFunc = SaveCollection
)

// LoadCollection returns the stored project collection. A missing slot or an
// unparseable body degrades to an empty collection, startup never fails on
// stored data.
func LoadCollection(ctx context.Context) []domain.Project {
	projects := []domain.Project{}

	db := ActiveDataSourceManager.GormDB(ctx)
	snapshot := Snapshot{}
	if err := db.Where(&Snapshot{Slot: ProjectsSlot}).First(&snapshot).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Warnf("load collection from slot %s: %v", ProjectsSlot, err)
		}
		return projects
	}

	if err := json.Unmarshal([]byte(snapshot.Body), &projects); err != nil {
		logrus.Warnf("slot %s holds unparseable body, starting empty: %v", ProjectsSlot, err)
		return []domain.Project{}
	}
	return projects
}

// SaveCollection serializes the whole collection into the slot.
func SaveCollection(ctx context.Context, projects []domain.Project) error {
	body, err := json.Marshal(projects)
	if err != nil {
		return err
	}

	db := ActiveDataSourceManager.GormDB(ctx)
	snapshot := Snapshot{Slot: ProjectsSlot, Body: string(body), UpdateTime: types.CurrentTimestamp()}
	existed := Snapshot{}
	if err := db.Where(&Snapshot{Slot: ProjectsSlot}).First(&existed).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return db.Create(&snapshot).Error
	}
	return db.Model(&Snapshot{Slot: ProjectsSlot}).
		Update(&Snapshot{Body: snapshot.Body, UpdateTime: snapshot.UpdateTime}).Error
}
