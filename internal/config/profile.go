package config

// Static search profile: target roles, skill keywords and title filters for a
// UI/UX designer with ~4 years of experience. These drive scoring and
// relevance filtering and are data, not tunables — see the keyword tables in
// internal/filter and internal/score for how they are applied.

// Profile describes the person the agent searches on behalf of.
type Profile struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Portfolio string `json:"portfolio"`
	Summary   string `json:"summary"`
}

var DefaultProfile = Profile{
	Name:     "Job Agent",
	Location: "Seattle, WA",
	Summary: "UI/UX Designer with 4+ years of experience creating accessible " +
		"interactive solutions. Background includes Figma, UX/UI design, " +
		"data visualization, user research, graphic design, and interactive " +
		"web/mobile projects.",
}

// TargetRoles are the queries run against every source during a sweep.
var TargetRoles = []string{
	"UX UI Designer",
	"Product Designer",
	"Visual Designer",
	"Brand Designer",
	"Marketing Designer",
	"UX Researcher",
	"UX Designer",
}

// SkillKeywords each add +1 to a job's score when found in title+description.
var SkillKeywords = []string{
	"figma", "adobe", "illustrator", "photoshop", "indesign",
	"wireframing", "prototyping", "user research", "usability testing",
	"accessibility", "data visualization", "design systems",
	"html", "css", "javascript", "responsive",
	"branding", "graphic design", "logo", "typography",
	"information architecture", "interaction design",
	"user-centered design", "persona", "journey mapping",
	"canva", "squarespace", "wordpress",
	"social media", "seo", "digital marketing", "content strategy",
	"a/b testing", "analytics",
}

// RelevantTitleKeywords: a title must contain at least one of these
// (substring) or one of RelevantTitleWordKeywords (whole word) to survive the
// orchestrator's relevance pass. Prevents "Software Engineer" roles from
// slipping through when descriptions happen to mention "product" or "visual".
var RelevantTitleKeywords = []string{
	"design", "designer", "user experience", "user interface",
	"product design", "visual design", "brand design",
	"creative", "graphic",
	"marketing design", "content design", "content strateg",
	"front-end", "frontend", "front end",
	"illustrat", // illustrator / illustration
}

// RelevantTitleWordKeywords are matched as whole words only, so "ui" does not
// match inside "building".
var RelevantTitleWordKeywords = []string{"ux", "ui"}

// ExcludedTitleKeywords reject a title outright, taking precedence over the
// relevant keywords. Removes hardware designers, software engineers,
// recruiters and other near-miss roles.
var ExcludedTitleKeywords = []string{
	"software engineer", "data engineer", "devops", "sre ",
	"backend", "fullstack", "full-stack", "full stack",
	"network engineer", "network asic", "asic ", "hardware",
	"electrical engineer", "mechanical engineer", "civil engineer",
	"talent acquisition", "recruiter", "recruiting",
	"sales rep", "account executive", "account manager",
	"game design", "game designer",
	"instructional design",
	"interior design",
	"fashion design",
	"floral design",
	"landscape design",
	"content reviewer", "content moderator",
	"data analyst", "data scientist", "machine learning",
	"security engineer", "reliability engineer",
	"project manager", "program manager", "product manager",
	"copywriter", "copy editor",
	"photographer",
}

// OverqualifiedTitleKeywords sink senior roles below relevant results. At most
// one penalty is applied per job, regardless of how many keywords match.
var OverqualifiedTitleKeywords = []string{
	"senior", "sr.",
	"principal",
	"staff",
	"lead",
	"head of",
	"director",
	"vp ", "vice president",
	"manager",
	"associate director",
}

// OverqualifiedPenalty is subtracted once when an overqualified keyword
// appears in the title.
const OverqualifiedPenalty = 20

// CompanyBoard identifies a company career page with a public ATS API.
type CompanyBoard struct {
	Name string
	ATS  string // "greenhouse" or "lever"
	Slug string // the company's board identifier
}

// CompanyBoards are polled by the company-boards adapter.
var CompanyBoards = []CompanyBoard{
	{Name: "Figma", ATS: "greenhouse", Slug: "figma"},
	{Name: "Canva", ATS: "greenhouse", Slug: "canva"},
	{Name: "Squarespace", ATS: "greenhouse", Slug: "squarespace"},
	{Name: "Webflow", ATS: "greenhouse", Slug: "webflow"},
	{Name: "Grammarly", ATS: "greenhouse", Slug: "grammarly"},
	{Name: "Duolingo", ATS: "greenhouse", Slug: "duolingo"},
	{Name: "Stripe", ATS: "greenhouse", Slug: "stripe"},
	{Name: "Airbnb", ATS: "greenhouse", Slug: "airbnb"},
	{Name: "Spotify", ATS: "lever", Slug: "spotify"},
	{Name: "Discord", ATS: "greenhouse", Slug: "discord"},
	{Name: "Dropbox", ATS: "greenhouse", Slug: "dropbox"},
	{Name: "Coinbase", ATS: "greenhouse", Slug: "coinbase"},
	{Name: "Cloudflare", ATS: "greenhouse", Slug: "cloudflare"},
	{Name: "Databricks", ATS: "greenhouse", Slug: "databricks"},
	{Name: "GitLab", ATS: "greenhouse", Slug: "gitlab"},
	{Name: "Intercom", ATS: "greenhouse", Slug: "intercom"},
	{Name: "Asana", ATS: "greenhouse", Slug: "asana"},
	{Name: "Brex", ATS: "greenhouse", Slug: "brex"},
	{Name: "Plaid", ATS: "lever", Slug: "plaid"},
	{Name: "Robinhood", ATS: "greenhouse", Slug: "robinhood"},
	{Name: "Affirm", ATS: "greenhouse", Slug: "affirm"},
	{Name: "Gusto", ATS: "greenhouse", Slug: "gusto"},
	{Name: "Lyft", ATS: "greenhouse", Slug: "lyft"},
	{Name: "Instacart", ATS: "greenhouse", Slug: "instacart"},
	{Name: "Vercel", ATS: "greenhouse", Slug: "vercel"},
}
