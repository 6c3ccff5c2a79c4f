package metrics

// IncrementBoardCreated increments board creation counter
func (m *Metrics) IncrementBoardCreated() {
	m.safeExecute("IncrementBoardCreated", func() {
		m.BoardCreatedTotal.Inc()
	})
}

// IncrementGoalCreated increments goal creation counter
func (m *Metrics) IncrementGoalCreated() {
	m.safeExecute("IncrementGoalCreated", func() {
		m.GoalCreatedTotal.Inc()
	})
}

// IncrementCommentCreated increments comment creation counter
func (m *Metrics) IncrementCommentCreated() {
	m.safeExecute("IncrementCommentCreated", func() {
		m.CommentCreatedTotal.Inc()
	})
}

// IncrementBotMessage counts a handled bot message by command
func (m *Metrics) IncrementBotMessage(command string) {
	m.safeExecute("IncrementBotMessage", func() {
		m.BotMessagesTotal.WithLabelValues(command).Inc()
	})
}

// IncrementTelegramVerified counts a successful code redemption
func (m *Metrics) IncrementTelegramVerified() {
	m.safeExecute("IncrementTelegramVerified", func() {
		m.TelegramVerifiedTotal.Inc()
	})
}

// IncrementPermissionDenied counts a denied authorization check
func (m *Metrics) IncrementPermissionDenied(target string) {
	m.safeExecute("IncrementPermissionDenied", func() {
		m.PermissionDeniedTotal.WithLabelValues(target).Inc()
	})
}

// SetBoardsTotal sets total boards gauge
func (m *Metrics) SetBoardsTotal(count int64) {
	m.safeExecute("SetBoardsTotal", func() {
		m.BoardsTotal.Set(float64(count))
	})
}

// SetGoalsActiveTotal sets the active goals gauge
func (m *Metrics) SetGoalsActiveTotal(count int64) {
	m.safeExecute("SetGoalsActiveTotal", func() {
		m.GoalsActiveTotal.Set(float64(count))
	})
}
