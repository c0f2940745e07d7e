package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// errEndOfInput — ввод закончился (EOF); сессия завершается штатно.
var errEndOfInput = errors.New("end of input")

// ParseNumber разбирает целое число из пользовательского ввода.
// Нечисловой ввод возвращает ошибку, совместимую с domain.ErrInputFormat.
func ParseNumber(raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInputFormat, strings.TrimSpace(raw))
	}
	return value, nil
}

// ParseQuantity разбирает количество в диапазоне int текущей платформы.
func ParseQuantity(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInputFormat, strings.TrimSpace(raw))
	}
	return value, nil
}

type inputLine struct {
	text string
	err  error
}

// prompter читает строки в отдельной горутине, чтобы ожидание ввода
// можно было прервать через ctx.
type prompter struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan inputLine
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, lines: make(chan inputLine)}
}

func (p *prompter) start() {
	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.in)
		for scanner.Scan() {
			p.lines <- inputLine{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			p.lines <- inputLine{err: fmt.Errorf("read input: %w", err)}
		}
	}()
}

// line печатает приглашение и читает одну строку.
// Отмена ctx возвращает ctx.Err(), не дожидаясь ввода.
func (p *prompter) line(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.once.Do(p.start)

	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case in, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.out)
			return "", errEndOfInput
		}
		return in.text, in.err
	}
}

// ask повторяет приглашение, пока parse не примет ввод.
func (p *prompter) ask(ctx context.Context, prompt string, parse func(raw string) error) error {
	for {
		raw, err := p.line(ctx, prompt)
		if err != nil {
			return err
		}
		if err := parse(raw); err == nil {
			return nil
		}
		fmt.Fprintln(p.out, "Please enter a whole number.")
	}
}

func (p *prompter) number(ctx context.Context, prompt string) (int64, error) {
	var value int64
	err := p.ask(ctx, prompt, func(raw string) (err error) {
		value, err = ParseNumber(raw)
		return err
	})
	return value, err
}

func (p *prompter) quantity(ctx context.Context, prompt string) (int, error) {
	var value int
	err := p.ask(ctx, prompt, func(raw string) (err error) {
		value, err = ParseQuantity(raw)
		return err
	})
	return value, err
}
