package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/fatih/color"
)

// FormatToast renders a toast as a coloured title line with the description
// indented below it.
func FormatToast(toast domain.Toast) string {
	title := color.New(color.FgGreen, color.Bold)
	icon := "✓"
	if toast.Variant == domain.ToastDestructive {
		title = color.New(color.FgRed, color.Bold)
		icon = "✗"
	}

	line := title.Sprintf("%s %s", icon, toast.Title)
	if toast.Description != "" {
		line += "\n   " + toast.Description
	}

	return line
}

// ToastPrinter writes toasts to a terminal as they arrive.
type ToastPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ports.Notifier = (*ToastPrinter)(nil)

func NewToastPrinter(out io.Writer) *ToastPrinter {
	return &ToastPrinter{out: out}
}

func (p *ToastPrinter) Notify(_ context.Context, toast domain.Toast) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.out, FormatToast(toast))
}
