package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/softtab/internal/buffer"
	"github.com/bethropolis/softtab/internal/event"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetSelections(sels []types.Selection)
	GetEventManager() *event.Manager
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	groups       []Group
	currentIndex int // Index of the *next* group to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		groups:     make([]Group, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// Record adds a group, clearing any redo history. Empty groups are ignored.
func (m *Manager) Record(group Group) {
	if len(group.Changes) == 0 {
		return
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex < len(m.groups) {
		m.groups = m.groups[:m.currentIndex]
	}
	m.groups = append(m.groups, group)
	if len(m.groups) > m.maxHistory {
		// simple FIFO eviction
		m.groups = m.groups[len(m.groups)-m.maxHistory:]
	}
	m.currentIndex = len(m.groups)

	logger.Debugf("History: Recorded group of %d change(s). Index: %d, Count: %d", len(group.Changes), m.currentIndex, len(m.groups))
}

// Undo reverts the last recorded group.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		logger.Debugf("History: Nothing to undo.")
		return false, nil
	}

	group := m.groups[m.currentIndex-1]
	buf := m.editor.GetBuffer()
	for i := len(group.Changes) - 1; i >= 0; i-- {
		if err := Revert(buf, group.Changes[i]); err != nil {
			// put back what was already reverted
			for j := i + 1; j < len(group.Changes); j++ {
				if rerr := Apply(buf, group.Changes[j]); rerr != nil {
					logger.Errorf("History: Failed to restore change %d after undo error: %v", j, rerr)
				}
			}
			m.mutex.Unlock()
			return false, fmt.Errorf("undo failed: %w", err)
		}
	}
	m.currentIndex--
	m.mutex.Unlock()

	// editor callbacks run unlocked so event handlers may query the history
	m.editor.SetSelections(group.Before)
	m.dispatchModified(group)
	logger.Debugf("History: Undid group of %d change(s)", len(group.Changes))
	return true, nil
}

// Redo reapplies the last undone group.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	if m.currentIndex >= len(m.groups) {
		index, count := m.currentIndex, len(m.groups)
		m.mutex.Unlock()
		logger.Debugf("History: Nothing to redo. currentIndex=%d, len(groups)=%d", index, count)
		return false, nil
	}

	group := m.groups[m.currentIndex]
	buf := m.editor.GetBuffer()
	for i, c := range group.Changes {
		if err := Apply(buf, c); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := Revert(buf, group.Changes[j]); rerr != nil {
					logger.Errorf("History: Failed to restore change %d after redo error: %v", j, rerr)
				}
			}
			m.mutex.Unlock()
			return false, fmt.Errorf("redo failed: %w", err)
		}
	}
	m.currentIndex++
	index := m.currentIndex
	m.mutex.Unlock()

	m.editor.SetSelections(group.After)
	m.dispatchModified(group)
	logger.Debugf("History: Redo completed. New currentIndex=%d", index)
	return true, nil
}

func (m *Manager) dispatchModified(group Group) {
	eventMgr := m.editor.GetEventManager()
	if eventMgr == nil {
		return
	}
	ranges := make([]types.Range, len(group.Changes))
	for i, c := range group.Changes {
		ranges[i] = types.Range{Start: c.Start, End: c.End}
	}
	eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Ranges: ranges})
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.groups = m.groups[:0]
	m.currentIndex = 0
	logger.Debugf("History: Cleared.")
}

// CanUndo returns true if there are groups that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are groups that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.groups)
}
