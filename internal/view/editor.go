package view

// Mode 标识后台编辑对话框所处的状态。
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Editor 是后台管理页的编辑状态：空闲、新建、或正在编辑某条记录。
// 字段不导出，只能通过 Idle / Creating / Editing 构造，
// 因此「对话框关闭却带着编辑目标」之类的组合无法出现。
type Editor[T any] struct {
	mode   Mode
	target T
}

// Idle 返回对话框关闭的状态。
func Idle[T any]() Editor[T] {
	return Editor[T]{mode: ModeIdle}
}

// Creating 返回新建对话框打开的状态。
func Creating[T any]() Editor[T] {
	return Editor[T]{mode: ModeCreating}
}

// Editing 返回编辑 record 的状态。
func Editing[T any](record T) Editor[T] {
	return Editor[T]{mode: ModeEditing, target: record}
}

// Mode 返回当前状态。
func (e Editor[T]) Mode() Mode {
	return e.mode
}

// DialogOpen 在新建或编辑时为 true。
func (e Editor[T]) DialogOpen() bool {
	return e.mode != ModeIdle
}

// IsCreating reports whether the create dialog is open.
func (e Editor[T]) IsCreating() bool {
	return e.mode == ModeCreating
}

// IsEditing reports whether an existing record is being edited.
func (e Editor[T]) IsEditing() bool {
	return e.mode == ModeEditing
}

// Target 返回正在编辑的记录，仅在 Editing 状态下 ok 为 true。
func (e Editor[T]) Target() (T, bool) {
	if e.mode != ModeEditing {
		var zero T
		return zero, false
	}
	return e.target, true
}

// OpenCreate 打开新建对话框，丢弃任何编辑目标。
func (e Editor[T]) OpenCreate() Editor[T] {
	return Creating[T]()
}

// OpenEdit 以 record 打开编辑对话框。
func (e Editor[T]) OpenEdit(record T) Editor[T] {
	return Editing(record)
}
