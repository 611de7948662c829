package models

import "slices"

type NoteCategory string

const (
	NoteCategoryPersonal NoteCategory = "personal"
	NoteCategoryWork     NoteCategory = "work"
	NoteCategoryIdeas    NoteCategory = "ideas"
	NoteCategoryTodo     NoteCategory = "todo"
	NoteCategoryJournal  NoteCategory = "journal"
	NoteCategoryStudy    NoteCategory = "study"
	NoteCategoryOther    NoteCategory = "other"
)

// NoteCategories lists every category in display order.
var NoteCategories = []NoteCategory{
	NoteCategoryPersonal, NoteCategoryWork, NoteCategoryIdeas, NoteCategoryTodo,
	NoteCategoryJournal, NoteCategoryStudy, NoteCategoryOther,
}

func (c NoteCategory) Valid() bool { return slices.Contains(NoteCategories, c) }

type NotePriority string

const (
	NotePriorityLow    NotePriority = "low"
	NotePriorityMedium NotePriority = "medium"
	NotePriorityHigh   NotePriority = "high"
	NotePriorityUrgent NotePriority = "urgent"
)

var NotePriorities = []NotePriority{NotePriorityLow, NotePriorityMedium, NotePriorityHigh, NotePriorityUrgent}

func (p NotePriority) Valid() bool { return slices.Contains(NotePriorities, p) }

// Weight orders priorities low(1) < medium < high < urgent(4); unknown is 0.
func (p NotePriority) Weight() int {
	return slices.Index(NotePriorities, p) + 1
}

type NoteAttachment struct {
	ID   string `json:"id"`
	Type string `json:"type"` // image | file | link
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size,omitempty"`
}

// Note is a free-form text record. Pin and archive are independent.
type Note struct {
	BaseRecord
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Category    NoteCategory     `json:"category"`
	Priority    NotePriority     `json:"priority"`
	Tags        []string         `json:"tags"`
	IsPinned    bool             `json:"isPinned"`
	IsArchived  bool             `json:"isArchived"`
	Color       string           `json:"color,omitempty"`
	Attachments []NoteAttachment `json:"attachments,omitempty"`
}

func (n Note) WithMeta(m BaseRecord) Note { n.BaseRecord = m; return n }

// HasTag reports an exact tag match.
func (n Note) HasTag(tag string) bool { return slices.Contains(n.Tags, tag) }
