package sentiment

// MaxHistoryPoints caps the rolling history log.
const MaxHistoryPoints = 96

// AppendHistory appends exactly one point and truncates from the oldest
// end, keeping at most MaxHistoryPoints entries.
func AppendHistory(history []HistoryPoint, point HistoryPoint) []HistoryPoint {
	history = append(history, point)
	if len(history) > MaxHistoryPoints {
		history = history[len(history)-MaxHistoryPoints:]
	}
	return history
}
