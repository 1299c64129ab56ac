package builtins

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tklauser/go-sysconf"
)

// procStat is where the kernel reports this process's CPU usage.
var procStat = "/proc/self/stat"

//
// CPUTimes returns the user and system CPU time used by the process so
// far.  The counters in /proc/self/stat (fields 14 and 15) are in clock
// ticks; SC_CLK_TCK says how many ticks make a second
//

func CPUTimes() (user, system time.Duration, err error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, fmt.Errorf("CPU: %w", err)
	}
	if clktck <= 0 {
		return 0, 0, fmt.Errorf("CPU: bad SC_CLK_TCK %d", clktck)
	}

	contents, err := os.ReadFile(procStat)
	if err != nil {
		return 0, 0, fmt.Errorf("CPU: %w", err)
	}

	utime, stime, err := parseStat(string(contents))
	if err != nil {
		return 0, 0, fmt.Errorf("CPU: %s: %w", procStat, err)
	}

	return ticks(utime, clktck), ticks(stime, clktck), nil
}

// parseStat pulls utime and stime out of a stat line.  The command
// name in field 2 is parenthesized and may itself contain blanks, so
// counting starts after the closing parenthesis.
func parseStat(stat string) (int64, int64, error) {

	i := strings.LastIndexByte(stat, ')')
	if i < 0 {
		return 0, 0, fmt.Errorf("malformed stat line")
	}

	// Fields after the name start at field 3 (state)

	fields := strings.Fields(stat[i+1:])
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("stat line has %d fields", len(fields)+2)
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime, stime, nil
}

func ticks(n, perSecond int64) time.Duration {
	return time.Duration(n) * time.Second / time.Duration(perSecond)
}

// FormatCPUTime renders a duration as hh:mm:ss.
func FormatCPUTime(d time.Duration) string {

	t := int64(d / time.Second)

	h := t / 3600
	m := t % 3600 / 60
	s := t % 60

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
