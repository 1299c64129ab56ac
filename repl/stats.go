package repl

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/garyluck/minibasic/basic"
	"github.com/garyluck/minibasic/builtins"
	"github.com/oarkflow/log"
)

// runStats holds the CPU counters at the start of a run.
type runStats struct {
	utime time.Duration
	stime time.Duration
	cpuOK bool
}

func startStats(logger *log.Logger) *runStats {

	st := &runStats{}

	var err error
	if st.utime, st.stime, err = builtins.CPUTimes(); err != nil {
		logger.Debug().Err(err).Msg("CPU usage unavailable")
	} else {
		st.cpuOK = true
	}

	return st
}

func (st *runStats) print(w io.Writer, o basic.Outcome) {

	var mem runtime.MemStats

	fmt.Fprintln(w)

	if st.cpuOK {
		if utime, stime, err := builtins.CPUTimes(); err == nil {
			fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
				builtins.FormatCPUTime(o.Elapsed),
				builtins.FormatCPUTime(utime-st.utime),
				builtins.FormatCPUTime(stime-st.stime))
		}
	}

	runtime.GC()
	runtime.ReadMemStats(&mem)

	fmt.Fprintf(w, "%dMB memory used\n", convertToMB(mem.HeapAlloc))
	fmt.Fprintf(w, "%d %s executed\n", o.Statements, pluralize("statement", o.Statements))
}

func convertToMB(num uint64) uint64 {

	const MB = 1024 * 1024

	return (num + MB - 1) / MB
}

// Oddity: 0 is considered plural
func pluralize(str string, num int) string {

	if num != 1 {
		return str + "s"
	}

	return str
}
