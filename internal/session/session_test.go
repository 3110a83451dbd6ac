package session

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/vimode/internal/config"
	"github.com/dshills/vimode/internal/engine/buffer"
	"github.com/dshills/vimode/internal/engine/cursor"
	"github.com/dshills/vimode/internal/input/key"
	"github.com/dshills/vimode/internal/input/mode"
	"github.com/dshills/vimode/internal/input/vim"
	"github.com/dshills/vimode/internal/operator"
	"github.com/dshills/vimode/internal/visual"
)

const poem = "A Discovery\n\nI found it in a legendary land\n" +
	"all rocks and lavender and tufted grass,\n" +
	"where it was settled on some sodden sand\n" +
	"hard by the torrent of a mountain pass."

// Offsets into poem.
const (
	offFound    = 15
	offLavender = 58
	offHard     = 126
)

func newSession(t *testing.T, text string, carets ...buffer.ByteOffset) *Session {
	t.Helper()
	s := New(text, WithCarets(carets...))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// typeAll feeds each key sequence in turn.
func typeAll(t *testing.T, s *Session, seqs ...string) {
	t.Helper()
	for _, seq := range seqs {
		require.NoError(t, s.Type(seq))
	}
}

func mustKey(t *testing.T, spec string) key.Event {
	t.Helper()
	ev, err := key.Parse(spec)
	require.NoError(t, err)
	return ev
}

func heads(s *Session) []buffer.ByteOffset {
	var out []buffer.ByteOffset
	for _, sel := range s.CurrentSelections() {
		out = append(out, sel.Head)
	}
	return out
}

func TestNewSession(t *testing.T) {
	s := newSession(t, poem, offFound, offLavender)
	assert.Equal(t, mode.Normal(), s.CurrentMode())
	assert.Equal(t, []buffer.ByteOffset{offFound, offLavender}, heads(s))
	assert.Equal(t, poem, s.Text())
	assert.NotEqual(t, s.ID(), New(poem).ID())

	sels := s.CurrentSelections()
	assert.Equal(t, buffer.Range{Start: offFound, End: offFound}, sels[0].Range)
	assert.Less(t, sels[0].Caret, sels[1].Caret)
}

func TestNewSessionClampsCarets(t *testing.T) {
	s := newSession(t, "abc", 99)
	assert.Equal(t, []buffer.ByteOffset{3}, heads(s))
}

func TestApplyTrigger(t *testing.T) {
	s := newSession(t, poem, offFound)

	require.True(t, s.ApplyTrigger(visual.EnterVisual(mode.CharacterWise), 5))
	assert.Equal(t, mode.Visual(mode.CharacterWise), s.CurrentMode())
	assert.Equal(t, []string{"found"}, s.SelectedText())

	assert.False(t, s.ApplyTrigger(visual.EnterInsert(), 0), "insert does not apply in visual mode")
	assert.Equal(t, mode.Visual(mode.CharacterWise), s.CurrentMode())

	require.True(t, s.ApplyTrigger(visual.Escape(), 0))
	rec, ok := s.LastSelection()
	require.True(t, ok)
	assert.Equal(t, buffer.Range{Start: offFound, End: offFound + 5}, rec.Range)
}

func TestApplyTriggerMotionFailureLeavesStateAlone(t *testing.T) {
	s := newSession(t, poem, 0)
	before := s.CurrentSelections()
	assert.False(t, s.ApplyTrigger(visual.Move(&vim.MotionLeft, 0), 0))
	assert.Equal(t, before, s.CurrentSelections())
	assert.Equal(t, mode.Normal(), s.CurrentMode())
}

func TestApplyTriggerWithMotion(t *testing.T) {
	tests := []struct {
		name        string
		motionCount int
		count       int
		want        string
	}{
		{"motion count", 2, 0, "found it"},
		{"entry count repeats the motion", 1, 2, "found it"},
		{"counts multiply", 2, 2, "found it in a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, poem, offFound)
			tr := visual.EnterVisual(mode.CharacterWise).WithMotion(&vim.MotionWordEnd, tt.motionCount, 0)
			require.True(t, s.ApplyTrigger(tr, tt.count))
			assert.Equal(t, []string{tt.want}, s.SelectedText())
			assert.Equal(t, mode.Visual(mode.CharacterWise), s.CurrentMode())
		})
	}
}

func TestModeObservers(t *testing.T) {
	s := newSession(t, poem, offFound)

	var changes []mode.Change
	remove := s.OnModeChange(func(from, to mode.Mode) {
		changes = append(changes, mode.Change{From: from, To: to})
		// observers run outside the session lock
		_ = s.CurrentMode()
	})

	ch := make(chan mode.Change, 1)
	s.OnModeChange(mode.ChannelSink(ch))

	typeAll(t, s, "v", "<Esc>")
	assert.Equal(t, []mode.Change{
		{From: mode.Normal(), To: mode.Visual(mode.CharacterWise)},
		{From: mode.Visual(mode.CharacterWise), To: mode.Normal()},
	}, changes)
	assert.Equal(t, mode.Change{From: mode.Normal(), To: mode.Visual(mode.CharacterWise)}, <-ch)

	remove()
	typeAll(t, s, "V")
	assert.Len(t, changes, 2)
}

func TestOperatorPendingIsObservable(t *testing.T) {
	s := newSession(t, poem, offFound)

	typeAll(t, s, "d")
	assert.Equal(t, mode.OperatorPending(), s.CurrentMode())
	assert.Equal(t, "d", s.PendingKeys())

	typeAll(t, s, "<Esc>")
	assert.Equal(t, mode.Normal(), s.CurrentMode())
	assert.Equal(t, poem, s.Text())

	typeAll(t, s, "dq")
	assert.Equal(t, mode.Normal(), s.CurrentMode(), "an invalid motion cancels the operator")
	assert.Equal(t, poem, s.Text())
}

func TestNormalOperators(t *testing.T) {
	tests := []struct {
		name     string
		caret    buffer.ByteOffset
		keys     string
		wantLine string // line 2 after the command
		wantHead buffer.ByteOffset
		wantReg  string
		wantMode mode.Mode
	}{
		{"x", offFound, "x", "I ound it in a legendary land", offFound, "f", mode.Normal()},
		{"3x", offFound, "3x", "I nd it in a legendary land", offFound, "fou", mode.Normal()},
		{"X", offFound, "X", "Ifound it in a legendary land", 14, " ", mode.Normal()},
		{"D", 20, "D", "I found", 19, " it in a legendary land", mode.Normal()},
		{"dw", offFound, "dw", "I it in a legendary land", offFound, "found ", mode.Normal()},
		{"d2w", offFound, "d2w", "I in a legendary land", offFound, "found it ", mode.Normal()},
		{"2dw", offFound, "2dw", "I in a legendary land", offFound, "found it ", mode.Normal()},
		{"de", offFound, "de", "I  it in a legendary land", offFound, "found", mode.Normal()},
		{"d$", offFound, "d$", "I ", 14, "found it in a legendary land", mode.Normal()},
		{"dfi", offFound, "dfi", "I t in a legendary land", offFound, "found i", mode.Normal()},
		{"db", 21, "db", "I it in a legendary land", offFound, "found ", mode.Normal()},
		{"cw", offFound, "cw", "I  it in a legendary land", offFound, "found", mode.Insert()},
		{"C", offFound, "C", "I ", offFound, "found it in a legendary land", mode.Insert()},
		{"s", offFound, "s", "I ound it in a legendary land", offFound, "f", mode.Insert()},
		{"yw", offFound, "yw", "I found it in a legendary land", offFound, "found ", mode.Normal()},
		{"yb", 21, "yb", "I found it in a legendary land", offFound, "found ", mode.Normal()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, poem, tt.caret)
			typeAll(t, s, tt.keys)

			lines := strings.Split(s.Text(), "\n")
			assert.Equal(t, tt.wantLine, lines[2])
			assert.Equal(t, []buffer.ByteOffset{tt.wantHead}, heads(s))
			reg, ok := s.Register(0)
			require.True(t, ok)
			assert.Equal(t, tt.wantReg, reg.Text())
			assert.Equal(t, tt.wantMode, s.CurrentMode())
		})
	}
}

func TestLinewiseOperators(t *testing.T) {
	t.Run("dd", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "dd")
		assert.True(t, strings.HasPrefix(s.Text(), "A Discovery\n\nall rocks"))
		assert.Equal(t, []buffer.ByteOffset{13}, heads(s))
		reg, _ := s.Register(0)
		assert.Equal(t, mode.LineWise, reg.Shape)
		assert.Equal(t, "I found it in a legendary land", reg.Text())
	})

	t.Run("dd on the last line", func(t *testing.T) {
		s := newSession(t, poem, offHard+4)
		typeAll(t, s, "dd")
		assert.True(t, strings.HasSuffix(s.Text(), "sodden sand"))
		assert.Equal(t, []buffer.ByteOffset{85}, heads(s))
	})

	t.Run("dj", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "dj")
		assert.True(t, strings.HasPrefix(s.Text(), "A Discovery\n\nwhere"))
		assert.Equal(t, []buffer.ByteOffset{13}, heads(s))
	})

	t.Run("dj on the last line fails", func(t *testing.T) {
		s := newSession(t, poem, offHard)
		typeAll(t, s, "dj")
		assert.Equal(t, poem, s.Text())
		assert.Equal(t, mode.Normal(), s.CurrentMode())
	})

	t.Run("yy keeps the caret", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "2yy")
		assert.Equal(t, poem, s.Text())
		assert.Equal(t, []buffer.ByteOffset{offFound}, heads(s))
		reg, _ := s.Register(0)
		assert.Equal(t, []string{"I found it in a legendary land", "all rocks and lavender and tufted grass,"}, reg.Lines)
	})

	t.Run("cc", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "ccnew<Esc>")
		assert.Equal(t, "new", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Normal(), s.CurrentMode())
		assert.Equal(t, []buffer.ByteOffset{15}, heads(s))
	})

	t.Run("S", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "S")
		assert.Equal(t, "", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Insert(), s.CurrentMode())
	})
}

func TestNormalOperatorsMulticaret(t *testing.T) {
	s := newSession(t, poem, offFound, offLavender)
	typeAll(t, s, "dw")
	lines := strings.Split(s.Text(), "\n")
	assert.Equal(t, "I it in a legendary land", lines[2])
	assert.Equal(t, "all rocks and and tufted grass,", lines[3])

	reg, _ := s.Register(0)
	assert.Equal(t, "found ", reg.Text(), "the register holds the first caret's text")

	typeAll(t, s, "x")
	lines = strings.Split(s.Text(), "\n")
	assert.Equal(t, "I t in a legendary land", lines[2])
	assert.Equal(t, "all rocks and nd tufted grass,", lines[3])
}

func TestChangeWordThenType(t *testing.T) {
	s := newSession(t, poem, offFound)
	typeAll(t, s, "cwlost<Esc>")
	assert.Equal(t, "I lost it in a legendary land", strings.Split(s.Text(), "\n")[2])
	assert.Equal(t, mode.Normal(), s.CurrentMode())
	assert.Equal(t, []buffer.ByteOffset{18}, heads(s))
}

func TestXOnEmptyLineFails(t *testing.T) {
	s := newSession(t, poem, 12)
	typeAll(t, s, "x")
	assert.Equal(t, poem, s.Text())
}

func TestVisualOnEmptyLineCoversNewline(t *testing.T) {
	s := newSession(t, poem, 12)
	typeAll(t, s, "v")
	assert.Equal(t, []string{"\n"}, s.SelectedText())

	typeAll(t, s, "d")
	assert.Equal(t, strings.Replace(poem, "\n\n", "\n", 1), s.Text())
	assert.Equal(t, mode.Normal(), s.CurrentMode())
	assert.Equal(t, []buffer.ByteOffset{12}, heads(s))
}

func TestInsertCommands(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		wantLine []string // lines 2.. after the command
		wantHead buffer.ByteOffset
	}{
		{"i", "ihello <Esc>", []string{"I hello found it in a legendary land"}, 20},
		{"a", "aX<Esc>", []string{"I fXound it in a legendary land"}, 16},
		{"I", "I> <Esc>", []string{"> I found it in a legendary land"}, 14},
		{"A", "A!<Esc>", []string{"I found it in a legendary land!"}, 43},
		{"o", "onew<Esc>", []string{"I found it in a legendary land", "new"}, 46},
		{"O", "Onew<Esc>", []string{"new", "I found it in a legendary land"}, 15},
		{"backspace", "i<BS><BS><Esc>", []string{"found it in a legendary land"}, 13},
		{"enter", "i<CR><Esc>", []string{"I ", "found it in a legendary land"}, 16},
		{"R", "Rxy<Esc>", []string{"I xyund it in a legendary land"}, 16},
		{"R past the line end", "$Rxyz<Esc>", []string{"I found it in a legendary lanxyz"}, 44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, poem, offFound)
			typeAll(t, s, tt.keys)
			lines := strings.Split(s.Text(), "\n")
			assert.Equal(t, tt.wantLine, lines[2:2+len(tt.wantLine)])
			assert.Equal(t, []buffer.ByteOffset{tt.wantHead}, heads(s))
			assert.Equal(t, mode.Normal(), s.CurrentMode())
		})
	}
}

func TestInsertMulticaret(t *testing.T) {
	s := newSession(t, poem, offFound, offLavender)
	typeAll(t, s, "i<lt><Esc>")
	lines := strings.Split(s.Text(), "\n")
	assert.Equal(t, "I <found it in a legendary land", lines[2])
	assert.Equal(t, "all rocks and <lavender and tufted grass,", lines[3])
}

func TestVisualOperators(t *testing.T) {
	t.Run("y", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "vey")
		assert.Equal(t, poem, s.Text())
		assert.Equal(t, mode.Normal(), s.CurrentMode())
		assert.Equal(t, []buffer.ByteOffset{offFound}, heads(s))
		reg, _ := s.Register(0)
		assert.Equal(t, "found", reg.Text())
	})

	t.Run("c", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "vecgone<Esc>")
		assert.Equal(t, "I gone it in a legendary land", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Normal(), s.CurrentMode())
	})

	t.Run("x", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "vex")
		assert.Equal(t, "I  it in a legendary land", strings.Split(s.Text(), "\n")[2])
	})

	t.Run("X deletes lines", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "vX")
		assert.True(t, strings.HasPrefix(s.Text(), "A Discovery\n\nall rocks"))
		reg, _ := s.Register(0)
		assert.Equal(t, mode.LineWise, reg.Shape)
	})

	t.Run("Vc keeps an empty line", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "Vc")
		assert.Equal(t, "", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Insert(), s.CurrentMode())
		assert.Equal(t, []buffer.ByteOffset{13}, heads(s))
	})

	t.Run("multicaret delete acts on every exited selection", func(t *testing.T) {
		s := newSession(t, poem, offFound, offLavender)
		typeAll(t, s, "ved")
		lines := strings.Split(s.Text(), "\n")
		assert.Equal(t, "I  it in a legendary land", lines[2])
		assert.Equal(t, "all rocks and  and tufted grass,", lines[3])
		assert.Equal(t, mode.Normal(), s.CurrentMode())
		assert.Len(t, s.CurrentSelections(), 2)
	})

	t.Run("block delete", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "<C-V>jld")
		lines := strings.Split(s.Text(), "\n")
		assert.Equal(t, "I und it in a legendary land", lines[2])
		assert.Equal(t, "alrocks and lavender and tufted grass,", lines[3])
		assert.Equal(t, []buffer.ByteOffset{offFound}, heads(s))
		reg, _ := s.Register(0)
		assert.Equal(t, mode.BlockWise, reg.Shape)
		assert.Equal(t, []string{"fo", "l "}, reg.Lines)
	})
}

func TestBlockCaretsMergeByRectangle(t *testing.T) {
	const grid = "abcdefghij\nabcdefghij\nabcdefghij\n"

	t.Run("shared lines in different columns stay apart", func(t *testing.T) {
		s := newSession(t, grid, 8, 12)
		typeAll(t, s, "<C-V>j")
		assert.Equal(t, mode.Visual(mode.BlockWise), s.CurrentMode())
		assert.Equal(t, []string{"i\ni", "b\nb"}, s.SelectedText())
	})

	t.Run("overlapping columns merge", func(t *testing.T) {
		s := newSession(t, grid, 1, 12)
		typeAll(t, s, "<C-V>j")
		require.Len(t, s.CurrentSelections(), 1)
		assert.Equal(t, []buffer.ByteOffset{23}, heads(s))
	})
}

func TestSwapVisualSelect(t *testing.T) {
	s := newSession(t, poem, offFound)
	typeAll(t, s, "v<C-G>")
	assert.Equal(t, mode.Select(mode.CharacterWise), s.CurrentMode())
	typeAll(t, s, "<C-G>")
	assert.Equal(t, mode.Visual(mode.CharacterWise), s.CurrentMode())
}

func TestSelectModeTyping(t *testing.T) {
	t.Run("printable key replaces the selection", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "gh<Right>")
		assert.Equal(t, mode.Select(mode.CharacterWise), s.CurrentMode())
		assert.Equal(t, []string{"fo"}, s.SelectedText())

		typeAll(t, s, "X")
		assert.Equal(t, "I Xund it in a legendary land", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Insert(), s.CurrentMode())
		assert.Equal(t, []buffer.ByteOffset{16}, heads(s))
		_, ok := s.Register(0)
		assert.False(t, ok, "select mode replacement leaves the registers alone")
	})

	t.Run("backspace deletes the selection", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "gh<Right><BS>")
		assert.Equal(t, "I und it in a legendary land", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Insert(), s.CurrentMode())
	})

	t.Run("line select", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "gHnew<Esc>")
		assert.Equal(t, "new", strings.Split(s.Text(), "\n")[2])
		assert.Equal(t, mode.Normal(), s.CurrentMode())
	})

	t.Run("escape", func(t *testing.T) {
		s := newSession(t, poem, offFound)
		typeAll(t, s, "gh<Esc>")
		assert.Equal(t, mode.Normal(), s.CurrentMode())
		assert.Equal(t, poem, s.Text())
	})
}

func TestSelectEnter(t *testing.T) {
	var calls int
	handler := func(buf *buffer.Buffer, carets []cursor.Caret) ([]operator.Placement, error) {
		calls++
		return DefaultEnterHandler(buf, carets)
	}

	want := func(t *testing.T, s *Session) {
		t.Helper()
		lines := strings.Split(s.Text(), "\n")
		assert.Equal(t, "I ", lines[2])
		assert.Equal(t, "ound it in a legendary land", lines[3])
		assert.Equal(t, "all rocks and ", lines[4])
		assert.Equal(t, "avender and tufted grass,", lines[5])
		assert.Equal(t, mode.Insert(), s.CurrentMode())
		assert.Equal(t, []buffer.ByteOffset{16, 59}, heads(s))
	}

	t.Run("editor-wide handler", func(t *testing.T) {
		calls = 0
		s := New(poem, WithCarets(offFound, offLavender), WithEnterHandler(handler))
		typeAll(t, s, "gh<CR>")
		want(t, s)
		assert.Equal(t, 1, calls)
	})

	t.Run("octopushandler", func(t *testing.T) {
		calls = 0
		s := New(poem, WithCarets(offFound, offLavender), WithEnterHandler(handler))
		typeAll(t, s, ":set octopushandler<CR>", "gh<CR>")
		want(t, s)
		assert.Equal(t, 2, calls)
	})
}

func TestCommandLine(t *testing.T) {
	s := newSession(t, poem, offFound)

	typeAll(t, s, ":set selectmode=cmd")
	assert.Equal(t, mode.CommandLine(), s.CurrentMode())
	assert.Equal(t, "set selectmode=cmd", s.CommandLine())

	typeAll(t, s, "<CR>")
	require.NoError(t, s.LastError())
	assert.Equal(t, mode.Normal(), s.CurrentMode())
	assert.True(t, s.Options().Get().HasSelectMode(config.SelectModeCmd))

	typeAll(t, s, "v")
	assert.Equal(t, mode.Select(mode.CharacterWise), s.CurrentMode())
	typeAll(t, s, "<Esc>:set selectmode=<CR>v")
	assert.Equal(t, mode.Visual(mode.CharacterWise), s.CurrentMode())
	typeAll(t, s, "<Esc>")

	typeAll(t, s, ":frobnicate<CR>")
	require.ErrorIs(t, s.LastError(), ErrUnknownCommand)
	assert.Equal(t, mode.Normal(), s.CurrentMode())

	typeAll(t, s, ":set tabstop=0<CR>")
	require.ErrorIs(t, s.LastError(), config.ErrInvalidValue)

	typeAll(t, s, ":se<BS><BS><BS>")
	assert.Equal(t, mode.Normal(), s.CurrentMode(), "backspace on an empty line leaves")

	typeAll(t, s, ":set octopushandler<Esc>")
	assert.False(t, s.Options().Get().OctopusHandler, "escape cancels")
}

func TestSharedOptionStore(t *testing.T) {
	store := config.NewStore(config.Default())
	a := New(poem, WithOptions(store))
	b := New(poem, WithOptions(store))

	typeAll(t, a, ":set slm=cmd<CR>")
	typeAll(t, b, "v")
	assert.Equal(t, mode.Select(mode.CharacterWise), b.CurrentMode())
	assert.Equal(t, mode.Normal(), a.CurrentMode())
}

func TestOptionChangesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := config.NewStore(config.Default())
	s := New(poem, WithOptions(store), WithLogger(zap.New(core)))

	typeAll(t, s, ":set ts=4<CR>")
	entries := logs.FilterMessage("options changed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(4), entries[0].ContextMap()["tabwidth"])
	assert.Equal(t, int64(8), entries[0].ContextMap()["prev_tabwidth"])

	require.NoError(t, s.Close())
	require.NoError(t, store.Apply("ts=2"))
	assert.Equal(t, 1, logs.FilterMessage("options changed").Len(), "closed sessions stop listening")
}

func TestClose(t *testing.T) {
	s := New(poem, WithCarets(offFound))
	typeAll(t, s, "v<Esc>")
	_, ok := s.LastSelection()
	require.True(t, ok)

	require.NoError(t, s.Close())
	_, ok = s.LastSelection()
	assert.False(t, ok)
	assert.False(t, s.ApplyTrigger(visual.EnterVisual(mode.CharacterWise), 0))
	assert.False(t, s.HandleKey(mustKey(t, "v")))
	require.ErrorIs(t, s.Close(), ErrClosed)
}

func TestConcurrentAccess(t *testing.T) {
	s := newSession(t, poem, offFound, offLavender)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.ApplyTrigger(visual.EnterVisual(mode.CharacterWise), 0)
				s.ApplyTrigger(visual.Move(&vim.MotionRight, 0), 0)
				_ = s.CurrentSelections()
				s.ApplyTrigger(visual.Escape(), 0)
			}
		}()
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.CurrentMode()
				_ = s.SelectedText()
			}
		}()
	}
	wg.Wait()

	for _, sel := range s.CurrentSelections() {
		assert.LessOrEqual(t, sel.Range.End, buffer.ByteOffset(len(poem)))
	}
}
