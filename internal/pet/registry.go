package pet

import (
	"fmt"
	"sort"
)

type TaskHelper string

// MultiMaskTaskHelper marks tasks whose verbalizations span several mask tokens.
// The decoding itself is done by the training framework.
const MultiMaskTaskHelper TaskHelper = "multi_mask"

// Registry maps task names onto the components the training framework discovers
// at startup. It is filled during initialization and only read afterwards.
type Registry struct {
	processors map[string]ProcessorFactory
	pvps       map[string]PVPFactory
	helpers    map[string]TaskHelper
}

func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]ProcessorFactory),
		pvps:       make(map[string]PVPFactory),
		helpers:    make(map[string]TaskHelper),
	}
}

func (r *Registry) RegisterProcessor(task string, factory ProcessorFactory) error {
	if _, exists := r.processors[task]; exists {
		return fmt.Errorf("%w: processor for '%s'", ErrDuplicateTask, task)
	}
	r.processors[task] = factory
	return nil
}

func (r *Registry) RegisterPVP(task string, factory PVPFactory) error {
	if _, exists := r.pvps[task]; exists {
		return fmt.Errorf("%w: pvp for '%s'", ErrDuplicateTask, task)
	}
	r.pvps[task] = factory
	return nil
}

func (r *Registry) RegisterTaskHelper(task string, helper TaskHelper) error {
	if _, exists := r.helpers[task]; exists {
		return fmt.Errorf("%w: task helper for '%s'", ErrDuplicateTask, task)
	}
	r.helpers[task] = helper
	return nil
}

func (r *Registry) Processor(task string) (DataProcessor, error) {
	factory, ok := r.processors[task]
	if !ok {
		return nil, fmt.Errorf("%w: no processor registered for '%s'", ErrUnknownTask, task)
	}
	return factory()
}

func (r *Registry) PVP(task string, patternID int, mask string) (PVP, error) {
	factory, ok := r.pvps[task]
	if !ok {
		return nil, fmt.Errorf("%w: no pvp registered for '%s'", ErrUnknownTask, task)
	}
	return factory(patternID, mask)
}

// TaskHelper returns the helper registered for the task, tasks without one use
// the framework's default single mask handling.
func (r *Registry) TaskHelper(task string) (TaskHelper, bool) {
	helper, ok := r.helpers[task]
	return helper, ok
}

func (r *Registry) Tasks() []string {
	tasks := make([]string, 0, len(r.processors))
	for task := range r.processors {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)
	return tasks
}
