package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// model drives the interactive step debugger: a page table centered on PC
// next to a register/flag status panel, with a raw struct dump below.
type model struct {
	cpu    *Cpu
	prevPC uint16
	err    error
}

// Init performs no initial command; the CPU is already primed by New.
func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step()
		case "n":
			m.prevPC = m.cpu.PC
			for {
				m.cpu.Step()
				if m.cpu.mCycle == 0 {
					break
				}
			}
		}
	}
	return m, nil
}

// renderPage renders 16 consecutive bus addresses as one line, bracketing
// whichever byte PC currently points at.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b := m.cpu.Bus.Read(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	flagLabels := []struct {
		name string
		set  bool
	}{
		{"Z", m.cpu.FlagZ()},
		{"N", m.cpu.FlagN()},
		{"H", m.cpu.FlagH()},
		{"C", m.cpu.FlagC()},
	}
	var flags string
	for _, f := range flagLabels {
		if f.set {
			flags += f.name + " "
		} else {
			flags += "_ "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
AF: %04x  BC: %04x
DE: %04x  HL: %04x
mcycle: %d  ime: %v  halted: %v
%s
`,
		m.cpu.PC, m.prevPC,
		m.cpu.SP,
		m.cpu.AF, m.cpu.BC,
		m.cpu.DE, m.cpu.HL,
		m.cpu.mCycle, m.cpu.IME, m.cpu.Halted,
		flags,
	)
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	base := m.cpu.PC &^ 0x0F
	lines := []string{header}
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(16*i)))
	}
	return strings.Join(lines, "\n")
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.cpu),
	)
}

// Debug starts an interactive TUI over an already-constructed Cpu: space or
// j single-steps one M-cycle, n runs to the next instruction boundary, q
// quits.
func Debug(c *Cpu) error {
	p, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		return err
	}
	if x, ok := p.(model); ok && x.err != nil {
		return x.err
	}
	return nil
}
