package basic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const FileSuffix = ".bas"

// SplitLine splits "<number> <text>" as typed at the prompt or read
// from a program file.  An empty text means "delete this line".
func SplitLine(s string) (int, string, error) {

	s = strings.TrimSpace(s)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == 0 {
		return 0, "", runtimeErrorf(ErrIllegalLineNumber, "%q", s)
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n <= 0 {
		return 0, "", runtimeErrorf(ErrIllegalLineNumber, "%q", s[:end])
	}

	return n, strings.TrimSpace(s[end:]), nil
}

// Save writes one "<number> <text>" record per line.
func Save(w io.Writer, p *Program) error {

	bw := bufio.NewWriter(w)

	var err error

	p.Each(func(l Line) bool {
		_, err = fmt.Fprintln(bw, l.String())
		return err == nil
	})

	if err != nil {
		return err
	}

	return bw.Flush()
}

// Load reads a program saved by Save.  Blank lines are skipped, and so
// are numbered lines with no text.
func Load(r io.Reader) (*Program, error) {

	p := NewProgram()
	sc := bufio.NewScanner(r)

	for recNo := 1; sc.Scan(); recNo++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}

		n, text, err := SplitLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", recNo, err)
		}

		if text != "" {
			if err := p.Set(n, text); err != nil {
				return nil, fmt.Errorf("record %d: %w", recNo, err)
			}
		}
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	p.ClearModified()

	return p, nil
}

//
// Take a program file name and sanity check the suffix.  A name with
// no suffix gets ".bas" appended
//

func ProgramFilename(name string) (string, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("missing file name")
	}

	switch ext := filepath.Ext(name); ext {
	case "":
		return name + FileSuffix, nil
	case FileSuffix:
		return name, nil
	default:
		return "", fmt.Errorf("%q: program files must end in %s", name, FileSuffix)
	}
}

func SaveFile(name string, p *Program) error {

	name, err := ProgramFilename(name)
	if err != nil {
		return err
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}

	if err := Save(f, p); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	p.ClearModified()

	return nil
}

func LoadFile(name string) (*Program, error) {

	name, err := ProgramFilename(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return p, nil
}
