package events

import "github.com/atomicstack/action-picker/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Collapse(path string, collapsed bool) {
	logging.Trace("tree.collapse", map[string]interface{}{"path": path, "collapsed": collapsed})
}

func (UITracer) CollapseAll(collapsed bool) {
	logging.Trace("tree.collapse-all", map[string]interface{}{"collapsed": collapsed})
}

func (UITracer) Cursor(row int, label string) {
	logging.Trace("tree.cursor", map[string]interface{}{"row": row, "label": label})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) CursorWord(pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
