package wecom

// Agent app_status values.
const (
	AppStatusTrial            = 1
	AppStatusTrialExpired     = 2
	AppStatusPaid             = 3
	AppStatusPaidExpired      = 4
	AppStatusUpgradeExpired   = 5
	AppStatusPaidPendingStart = 6
)

// Agent is one entry of a corp's edition info: the purchased edition of a sub-application.
type Agent struct {
	AgentID               int64  `json:"agentid"`
	EditionID             string `json:"edition_id,omitempty"`
	EditionName           string `json:"edition_name,omitempty"`
	AppStatus             int    `json:"app_status"`
	UserLimit             int64  `json:"user_limit"`
	ExpiredTime           int64  `json:"expired_time"`
	IsVirtualVersion      bool   `json:"is_virtual_version"`
	IsSharedFromOtherCorp bool   `json:"is_shared_from_other_corp"`
}

// EditionInfo lists the paid editions of a corp.
type EditionInfo struct {
	Agents []Agent `json:"agent"`
}

// AuthCorpInfo describes the authorizing corp.
type AuthCorpInfo struct {
	CorpID            string `json:"corpid"`
	CorpName          string `json:"corp_name"`
	CorpType          string `json:"corp_type"`
	CorpSquareLogoURL string `json:"corp_square_logo_url,omitempty"`
	CorpUserMax       int    `json:"corp_user_max"`
	CorpFullName      string `json:"corp_full_name,omitempty"`
	VerifiedEndTime   int64  `json:"verified_end_time,omitempty"`
	SubjectType       int    `json:"subject_type,omitempty"`
	CorpScale         string `json:"corp_scale,omitempty"`
	CorpIndustry      string `json:"corp_industry,omitempty"`
	CorpSubIndustry   string `json:"corp_sub_industry,omitempty"`
}

// AuthAgent is an authorized application entry.
type AuthAgent struct {
	AgentID  int64  `json:"agentid"`
	Name     string `json:"name"`
	AuthMode int    `json:"auth_mode"`
}

// AuthDetails wraps the authorized agents.
type AuthDetails struct {
	Agents []AuthAgent `json:"agent"`
}

// AuthInfo is the get_auth_info response.
type AuthInfo struct {
	AuthCorpInfo AuthCorpInfo `json:"auth_corp_info"`
	Auth         AuthDetails  `json:"auth_info"`
	EditionInfo  *EditionInfo `json:"edition_info,omitempty"`
}

// FirstEditionAgent returns the first edition agent, or nil when the corp has none.
func (a *AuthInfo) FirstEditionAgent() *Agent {
	if a == nil || a.EditionInfo == nil || len(a.EditionInfo.Agents) == 0 {
		return nil
	}
	agent := a.EditionInfo.Agents[0]
	return &agent
}

type baseResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

func (r baseResponse) apiError(api string) error {
	if r.ErrCode == 0 {
		return nil
	}
	return &APIError{API: api, Code: r.ErrCode, Message: r.ErrMsg}
}

type suiteTokenRequest struct {
	SuiteID     string `json:"suite_id"`
	SuiteSecret string `json:"suite_secret"`
	SuiteTicket string `json:"suite_ticket"`
}

type suiteTokenResponse struct {
	baseResponse
	SuiteAccessToken string `json:"suite_access_token"`
	ExpiresIn        int64  `json:"expires_in"`
}

type authInfoRequest struct {
	AuthCorpID    string `json:"auth_corpid"`
	PermanentCode string `json:"permanent_code"`
}

type authInfoResponse struct {
	baseResponse
	AuthInfo
}
