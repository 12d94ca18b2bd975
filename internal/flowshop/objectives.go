package flowshop

// WeightedTardiness computes WT(pi) = sum_i w[pi_i] * max(C[i,M-1] - d[pi_i], 0)
// from a completion matrix already filled for perm. Set refresh to recompute
// buf first; callers that already filled buf for this exact perm (e.g. right
// after FillCompletion) may pass refresh=false to skip the redundant O(NM)
// pass.
func WeightedTardiness(inst *Instance, perm []int, buf []int, refresh bool) float64 {
	if refresh {
		FillCompletion(inst, perm, buf)
	}
	m := inst.Machines
	total := 0.0
	for i, job := range perm {
		c := buf[i*m+m-1]
		tardy := c - inst.DueDate(job)
		if tardy < 0 {
			tardy = 0
		}
		total += inst.Weight(job) * float64(tardy)
	}
	return total
}

// Makespan computes Cmax(pi) = C[N-1,M-1].
func Makespan(inst *Instance, perm []int, buf []int, refresh bool) int {
	if refresh {
		FillCompletion(inst, perm, buf)
	}
	n, m := inst.Jobs, inst.Machines
	return buf[(n-1)*m+m-1]
}
