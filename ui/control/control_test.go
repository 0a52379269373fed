package control

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/elizafairlady/creditform/ui/form"
	"github.com/elizafairlady/creditform/ui/keyboard"
	"github.com/elizafairlady/creditform/ui/validate"
	"github.com/elizafairlady/creditform/ui/view"
)

type created struct {
	name   string
	credit string
}

type recorder struct{ calls []created }

func (r *recorder) Create(_ context.Context, name string, credit decimal.Decimal) error {
	r.calls = append(r.calls, created{name, credit.StringFixed(2)})
	return nil
}

func newControl(t *testing.T) (*Control, *recorder) {
	t.Helper()
	rec := &recorder{}
	inbox := &Inbox{}
	c := New(form.New(rec, inbox, keyboard.New(nil)), inbox, nil)
	c.ActionLog = []string{}
	return c, rec
}

func run(t *testing.T, c *Control, lines ...string) {
	t.Helper()
	for _, l := range lines {
		require.NoError(t, c.ProcessAction(context.Background(), l), l)
	}
}

func messages(c *Control) []string {
	var out []string
	for _, n := range c.Inbox().History() {
		out = append(out, n.Message)
	}
	return out
}

func TestInitialFocus(t *testing.T) {
	c, _ := newControl(t)
	require.Equal(t, form.IDName, c.Focus())
	require.Equal(t, []string{form.IDName, form.IDCredit, form.IDSave, form.IDClose, form.IDKeyboard}, c.FocusOrder())
	require.Same(t, c.Form().Name.Entry, c.Form().Keyboard.Target())
}

func TestTypeAndSave(t *testing.T) {
	c, rec := newControl(t)
	run(t, c,
		`type text="Jane"`,
		`next`,
		`type text=10.00`,
		`click id=save`,
	)
	require.Equal(t, []created{{"Jane", "10.00"}}, rec.calls)
	require.Empty(t, messages(c))
	require.Equal(t, "", c.Form().Name.Entry.Value(), "fields reset after save")
	require.Equal(t, form.IDName, c.Focus())
	require.False(t, c.Form().Credit.Entry.Err(), "cleared fields are not flagged")
	require.Len(t, c.ActionLog, 4)
}

func TestRejectedKeysNeverCommit(t *testing.T) {
	c, _ := newControl(t)
	run(t, c,
		`type text="J4ne D0e"`,
		`focus id=credit`,
		`type text=a1-.2.345`,
	)
	require.Equal(t, "Jne De", c.Form().Name.Entry.Value())
	require.Equal(t, "1.23", c.Form().Credit.Entry.Value())
	require.Equal(t, []string{
		validate.MsgOnlyCharacters, validate.MsgOnlyCharacters,
		validate.MsgOnlyNumbers, validate.MsgOnlyNumbers, validate.MsgOnlyNumbers,
	}, messages(c))
}

func TestFocusLossMarksInvalid(t *testing.T) {
	c, _ := newControl(t)
	run(t, c, `next`)
	name := c.Form().Name.Entry
	require.True(t, name.Err(), "empty name flagged on focus out")
	require.Equal(t, form.IDCredit, c.Focus(), "focus moves anyway")

	run(t, c, `type text=-.`, `next`)
	require.True(t, c.Form().Credit.Entry.Err())

	tree := c.Tree()
	require.Equal(t, "danger", view.Find(tree, form.IDName).Props["style"])
	require.True(t, view.Find(tree, form.IDSave).Bool("focused"))

	run(t, c, `focus id=name`, `type text=J`)
	require.False(t, name.Err(), "next passing event clears the flag")
	require.Equal(t, "primary", view.Find(c.Tree(), form.IDName).Props["style"])
}

func TestSaveRefused(t *testing.T) {
	c, rec := newControl(t)
	run(t, c, `set id=credit text=10.00`, `click id=save`)
	run(t, c, `set id=name text=Jane`, `set id=credit text=abc`, `click id=save`)
	require.Empty(t, rec.calls)
	require.Equal(t, []string{form.MsgNameNeeded, form.MsgCreditNeeded}, messages(c))

	n, ok := c.Inbox().Pending()
	require.True(t, ok)
	require.Equal(t, form.MsgNameNeeded, n.Message)
	run(t, c, `dismiss`)
	n, _ = c.Inbox().Pending()
	require.Equal(t, form.MsgCreditNeeded, n.Message)
	run(t, c, `dismiss`)
	_, ok = c.Inbox().Pending()
	require.False(t, ok)
}

func TestCursorEditing(t *testing.T) {
	c, _ := newControl(t)
	run(t, c,
		`focus id=credit`,
		`type text=12`,
		`cursor to=0`,
		`type text=-`,
		`cursor to=end`,
		`type text=.5`,
		`cursor delta=-2`,
		`type text=-`,
		`backspace`,
	)
	require.Equal(t, "-1.5", c.Form().Credit.Entry.Value())
	require.Equal(t, 2, c.Form().Credit.Entry.Cursor())
}

func TestBackspaceAtStart(t *testing.T) {
	c, _ := newControl(t)
	run(t, c, `backspace`, `type text=Al`, `cursor to=0`, `backspace`)
	require.Equal(t, "Al", c.Form().Name.Entry.Value())
}

func TestKeyboardFollowsFocus(t *testing.T) {
	c, rec := newControl(t)
	run(t, c,
		`press key=j`,
		`press key=␣`,
		`press key=d`,
		`press key=⌫`,
		`press key=5`,
		`focus id=credit`,
		`focus id=keyboard`,
		`press key=5`,
		`press key=.`,
		`kbmove dx=0 dy=0`,
		`press`,
		`press key=2`,
		`press key=1`,
		`focus id=save`,
		`click id=save`,
	)
	require.Same(t, c.Form().Name.Entry, c.Form().Keyboard.Target(), "save moves focus back to name")
	require.Equal(t, []created{{"j ", "5.21"}}, rec.calls)
	require.Equal(t, []string{validate.MsgOnlyCharacters, validate.MsgOnlyNumbers}, messages(c))
}

func TestKeyboardNavigation(t *testing.T) {
	c, _ := newControl(t)
	kbd := c.Form().Keyboard
	run(t, c, `kbmove dx=-1`)
	require.Equal(t, "0", kbd.Selected())
	run(t, c, `kbmove dy=-1`)
	require.Equal(t, keyboard.Space, kbd.Selected())
	run(t, c, `press`)
	require.Equal(t, " ", c.Form().Name.Entry.Value())
}

func TestRawEvents(t *testing.T) {
	c, _ := newControl(t)
	run(t, c,
		`key id=credit current="" char=-`,
		`key id=credit current=- char=7 index=1`,
		`key id=credit current=-7 char=- index=1`,
		`focusout id=credit`,
	)
	credit := c.Form().Credit.Entry
	require.Equal(t, "-7", credit.Value())
	require.False(t, credit.Err())
	require.Equal(t, form.IDName, c.Focus(), "raw events do not move focus")

	run(t, c, `focusin id=credit`)
	require.Same(t, credit, c.Form().Keyboard.Target())
}

func TestRawEventsMustMatchTheirEdit(t *testing.T) {
	c, _ := newControl(t)
	ctx := context.Background()
	for _, line := range []string{
		`key id=name proposed=1234!! current="" char=a index=0 action=1`,
		`key id=credit proposed=9.999 current="" char=x index=0 action=0`,
		`key id=credit proposed=1 current="" char=1 index=3 action=1`,
	} {
		err := c.ProcessAction(ctx, line)
		require.ErrorContains(t, err, "inconsistent key event", line)
	}
	require.Equal(t, "", c.Form().Name.Entry.Value())
	require.Equal(t, "", c.Form().Credit.Entry.Value())

	run(t, c,
		`key id=credit proposed=12 current="" char=12 index=0 action=1`,
		`key id=credit proposed=2 current=12 char=1 index=0 action=0`,
	)
	require.Equal(t, "2", c.Form().Credit.Entry.Value())
}

func TestActionErrors(t *testing.T) {
	c, _ := newControl(t)
	ctx := context.Background()
	for _, line := range []string{
		`warp id=name`,
		`focus id=nowhere`,
		`type id=save text=x`,
		`click id=help`,
		`press key=ß`,
		`cursor delta=x`,
		`kbmove dx=left`,
		`key id=credit current=99 char=1`,
		`key id=save char=1`,
		`focusout`,
	} {
		require.Error(t, c.ProcessAction(ctx, line), line)
	}
}

func TestCloseStopsReplay(t *testing.T) {
	c, rec := newControl(t)
	script := `
# fill in and close without saving
type text=Jane
next
type text=3

click id=close
click id=save
`
	require.NoError(t, c.Replay(context.Background(), strings.NewReader(script)))
	require.True(t, c.Closed())
	require.Empty(t, rec.calls)
	require.Equal(t, "", c.Form().Name.Entry.Value())
	require.ErrorIs(t, c.ProcessAction(context.Background(), `next`), form.ErrClosed)
}

func TestReplayReportsLine(t *testing.T) {
	c, _ := newControl(t)
	err := c.Replay(context.Background(), strings.NewReader("type text=Jane\n\nbogus\n"))
	require.ErrorContains(t, err, "line 3")
}

func TestReplayCanceled(t *testing.T) {
	c, _ := newControl(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, c.Replay(ctx, strings.NewReader("next\n")), context.Canceled)
}

func TestNotifyCalled(t *testing.T) {
	c, _ := newControl(t)
	calls := 0
	c.Notify = func() { calls++ }
	run(t, c, `next`, `prev`)
	require.Equal(t, 2, calls)
	require.Equal(t, form.IDName, c.Focus())
	run(t, c, `prev`)
	require.Equal(t, form.IDKeyboard, c.Focus())
}
