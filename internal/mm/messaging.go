//    Retrofitter
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	BLUE2                = "\033[38;5;68m"  // SteelBlue3
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	YELLOW2              = "\033[38;5;143m" // DarkKhaki
	GREY3                = "\033[38;5;242m" // Grey42
	WHITE                = "\033[38;5;255m" // Grey93
	BLINK                = "\033[30;0;5m"
	PANIC2               = "[%s%s v.%s%s] (%s%s%s) %sUNRECOVERABLE ERROR%s\n"
)

// MessageMaker - leveled terminal output; one per package, configured by lnch once the config is known
type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	Clr  string
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	Out  io.Writer
	mtx  sync.Mutex
	exit func(int)
}

// NewMessageMaker - a MessageMaker with default settings writing to stdout
func NewMessageMaker(longname, shortname, version string) *MessageMaker {
	return &MessageMaker{
		Lnc:  time.Now(),
		LLvl: MSGNOTE,
		LNm:  longname,
		SNm:  shortname,
		Ver:  version,
		Win:  runtime.GOOS == "windows",
		Out:  os.Stdout,
	}
}

// Configure - push level and color settings into the MessageMaker
func (m *MessageMaker) Configure(loglevel int, bw bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.LLvl = loglevel
	m.BW = bw
}

// SetOutput - redirect messages; tests capture output this way
func (m *MessageMaker) SetOutput(w io.Writer) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.Out = w
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string) { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string) { m.Emit(s, MSGTMI) }

// Emit - send a message to the terminal, perhaps adding color and style to it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "[RTF] Reading embeddings from vectors.txt.gz"
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.LLvl < threshold {
		return
	}

	out := m.Out
	if out == nil {
		out = os.Stdout
	}

	if !m.Win && !m.BW {
		var color string

		switch threshold {
		case MSGMAND:
			color = GREEN
		case MSGCRIT:
			color = RED1
		case MSGWARN:
			color = YELLOW2
		case MSGNOTE:
			color = YELLOW1
		case MSGFYI:
			color = CYAN2
		case MSGPEEK:
			color = BLUE2
		case MSGTMI:
			color = GREY3
		default:
			color = WHITE
		}
		_, _ = fmt.Fprintf(out, "[%s%s%s] %s%s%s\n", YELLOW1, m.SNm, RESET, color, message, RESET)
	} else {
		// terminal color codes not w's friend
		_, _ = fmt.Fprintf(out, "[%s] %s\n", m.SNm, message)
	}
}

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD    = "\033[1m"
		ITAL    = "\033[3m"
		UNDER   = "\033[4m"
		REVERSE = "\033[7m"
		STRIKE  = "\033[9m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S4", "", "S5", "", "S0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S4", STRIKE, "S5", REVERSE,
			"S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[B: 3.764s][Δ: 1.024s] lexicon built"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}

// EC - report an unrecoverable error along with the caller and exit
func (m *MessageMaker) EC(err error, caller string) {
	if err == nil {
		return
	}
	out := m.Out
	if out == nil {
		out = os.Stderr
	}
	if m.BW || m.Win {
		_, _ = fmt.Fprintf(out, PANIC2, "", m.LNm, m.Ver, "", "", caller, "", "", "")
	} else {
		_, _ = fmt.Fprintf(out, PANIC2, YELLOW2, m.LNm, m.Ver, RESET, CYAN2, caller, RESET, RED1, RESET)
	}
	_, _ = fmt.Fprintln(out, err)
	m.ExitOrHang(1)
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	exit := m.exit
	if exit == nil {
		exit = os.Exit
	}
	if m.Win {
		m.Emit(fmt.Sprintf(HANG, m.LNm, SUSP), MSGMAND)
		time.Sleep(SUSP * time.Second)
	}
	exit(e)
}

// Count - render an integer with thousands separators: 1234567 ==> "1,234,567"
func Count(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
