package dto

// ListAuditLogsParams defines the query parameters for the audit log.
type ListAuditLogsParams struct {
	Date    string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Action  string `form:"action" binding:"omitempty,max=50"`
	StaffID string `form:"staff_id" binding:"omitempty,max=100"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=1000"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}
