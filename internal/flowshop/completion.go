package flowshop

// CompletionBufferLen returns the element count a completion-matrix scratch
// buffer must have for an instance with the given job/machine counts.
func CompletionBufferLen(jobs, machines int) int {
	return jobs * machines
}

// FillCompletion computes the N×M completion matrix for the ordering perm
// into buf (row-major, row stride = machines), following the flow-shop
// recurrence:
//
//	C[0,0]   = P[0,0]
//	C[i,0]   = C[i-1,0] + P[i,0]
//	C[0,j]   = C[0,j-1] + P[0,j]
//	C[i,j]   = max(C[i-1,j], C[i,j-1]) + P[i,j]
//
// buf must have length CompletionBufferLen(inst.Jobs, inst.Machines); it is
// the caller's scratch buffer and is never allocated here, so this is safe
// to call from the hottest path (every local-search candidate, every ant).
func FillCompletion(inst *Instance, perm []int, buf []int) {
	m := inst.Machines
	for i, job := range perm {
		row := i * m
		for j := 0; j < m; j++ {
			p := inst.Time(job, j)
			switch {
			case i == 0 && j == 0:
				buf[row+j] = p
			case i == 0:
				buf[row+j] = buf[row+j-1] + p
			case j == 0:
				buf[row+j] = buf[row-m+j] + p
			default:
				up := buf[row-m+j]
				left := buf[row+j-1]
				if up > left {
					buf[row+j] = up + p
				} else {
					buf[row+j] = left + p
				}
			}
		}
	}
}

// CompletionAt returns C[i,j] from a buffer filled by FillCompletion.
func CompletionAt(buf []int, machines, i, j int) int {
	return buf[i*machines+j]
}
