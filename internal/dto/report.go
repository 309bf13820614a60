package dto

// ReportKind - вид отчета по участникам
type ReportKind string

const (
	ReportMonthlyJoined   ReportKind = "monthly-joined"
	ReportExpiring3Days   ReportKind = "expiring-3-days"
	ReportExpiring4To7    ReportKind = "expiring-4-7-days"
	ReportExpired         ReportKind = "expired"
	ReportInactiveMembers ReportKind = "inactive"
)

// ReportKinds - в порядке карточек на дашборде
var ReportKinds = []ReportKind{
	ReportMonthlyJoined,
	ReportExpiring3Days,
	ReportExpiring4To7,
	ReportExpired,
	ReportInactiveMembers,
}

func (k ReportKind) Valid() bool {
	for _, known := range ReportKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Title - заголовок карточки/страницы отчета
func (k ReportKind) Title() string {
	switch k {
	case ReportMonthlyJoined:
		return "Joined this month"
	case ReportExpiring3Days:
		return "Expiring within 3 days"
	case ReportExpiring4To7:
		return "Expiring in 4-7 days"
	case ReportExpired:
		return "Expired"
	case ReportInactiveMembers:
		return "Inactive members"
	}
	return string(k)
}

type ReportResponse struct {
	Kind    ReportKind       `json:"kind"`
	Title   string           `json:"title"`
	Count   int              `json:"count"`
	Members []MemberResponse `json:"members"`
}

// ReportCard - карточка дашборда: ссылка на отчет и число участников
type ReportCard struct {
	Kind  ReportKind `json:"kind"`
	Title string     `json:"title"`
	Count int        `json:"count"`
}
