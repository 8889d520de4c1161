package heropool

// Assign picks a stable id for key: index Hash(key) mod len(pool). When used
// is supplied the pool is probed forward with wraparound for the first id not
// in used; if every id is used the unconditioned index is returned and the
// collision accepted. used is never modified. An empty pool yields "".
func Assign(pool Pool, key string, used UsedSet) string {
	n := len(pool)
	if n == 0 {
		return ""
	}
	idx := int(Hash(key) % uint32(n))
	if len(used) == 0 {
		return pool[idx]
	}
	for step := 0; step < n; step++ {
		candidate := pool[(idx+step)%n]
		if !used.Has(candidate) {
			return candidate
		}
	}
	return pool[idx]
}
