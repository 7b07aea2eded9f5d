package indices

import (
	"beacon/domain"
	"beacon/domain/project"
	"context"
	"fmt"
	"sync"
)

var (
	lock    sync.Mutex
	running bool

	IndicesFullSyncFunc    = IndicesFullSync
	ScheduleNewSyncRunFunc = ScheduleNewSyncRun
)

// ScheduleNewSyncRun starts one full index rebuild in the background. At most
// one run is in flight, a second request while running is reported as not
// scheduled.
func ScheduleNewSyncRun() (bool, error) {
	lock.Lock()
	if running {
		lock.Unlock()
		return false, nil
	}
	running = true
	lock.Unlock()

	waitRunning := sync.WaitGroup{}
	waitRunning.Add(1)
	go func() {
		waitRunning.Done()
		defer func() {
			lock.Lock()
			running = false
			lock.Unlock()
		}()
		IndicesFullSyncFunc()
	}()
	waitRunning.Wait()
	return true, nil
}

// IndicesFullSync reindexes the whole collection, soft-deleted projects
// included, so a rebuilt index never silently loses them.
func IndicesFullSync() (err error) {
	defer func() {
		if ret := recover(); ret != nil {
			e, ok := ret.(error)
			if ok {
				err = e
			} else {
				err = fmt.Errorf("error on indices full sync: %v", ret)
			}
		}
	}()

	projects := project.QueryProjectsFunc(domain.ProjectQuery{Deleted: true})
	if len(projects) == 0 {
		return nil
	}
	return IndexProjectsFunc(projects, context.Background())
}
