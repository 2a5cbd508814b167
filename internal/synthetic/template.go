package synthetic

// Canned template content served in synthetic mode. The per-topic table
// overrides title and meta description; everything else is shared.

const templateTitle = "The Complete Guide to Safe High-Rise Demolition Techniques"

const templateMeta = "Explore comprehensive safety protocols and best practices for high-rise demolition projects, including equipment selection, risk assessment, and regulatory compliance."

const templateIntroduction = `High-rise demolition represents one of the most complex and challenging aspects of the demolition industry. With urban environments becoming increasingly dense and building heights continuing to soar, the need for safe, efficient, and environmentally responsible demolition techniques has never been more critical.

This guide examines the essential safety protocols, equipment requirements, and best practices that define successful high-rise demolition projects.`

const templateMainContent = `## Understanding High-Rise Demolition Challenges

High-rise projects present unique challenges that require specialized expertise and meticulous planning:

### Structural Integrity Assessment
- Reviewing original construction blueprints
- Conducting on-site structural surveys
- Identifying load-bearing elements

### Safety Zone Establishment
- Calculate debris fall zones based on building height
- Implement multi-layer barrier systems
- Coordinate with local authorities for traffic management

## Modern Demolition Methods

### Top-Down Demolition
Systematic dismantling from top to bottom using high-reach excavators and manual teams. Maximum control over debris, suitable for congested urban areas, but time-intensive.

### Implosion
Controlled implosion remains the most efficient method for suitable structures, requiring specialized licensing, extensive pre-weakening, and comprehensive public safety measures.

### High-Reach Arm Demolition
Modern hydraulic excavators offer operating heights up to 100 meters with integrated dust suppression and real-time monitoring.

## Safety Protocols and Regulations

All personnel must be equipped with appropriate PPE, and sites require continuous air quality monitoring, water spray systems for dust suppression, and adherence to OSHA demolition standards (29 CFR 1926 Subpart T).`

const templateConclusion = `High-rise demolition continues to evolve with advancing technology and stricter safety requirements. Success demands a combination of technical expertise, rigorous safety protocols, and adaptive planning.

The future of the field lies in the integration of smart technologies, sustainable practices, and techniques that prioritize safety without compromising efficiency.`

var templateImageURLs = []string{
	"https://images.unsplash.com/photo-1581092160562-40aa08e78837?w=800",
	"https://images.unsplash.com/photo-1590496793907-51d60c6d9852?w=800",
}

var templateKeywords = []string{
	"demolition safety", "high-rise", "construction", "safety protocols", "equipment", "regulations",
}

// topicResponses maps topic slugs to canned overrides.
var topicResponses = map[string]struct {
	title string
	meta  string
}{
	"manual-vs-mechanical": {
		title: "Manual vs Mechanical Demolition: Choosing the Right Approach",
		meta:  "Compare manual and mechanical demolition methods, understanding when each approach is most effective for your project needs.",
	},
	"commercial-equipment": {
		title: "Essential Commercial Demolition Equipment Guide",
		meta:  "Comprehensive overview of commercial demolition equipment types, specifications, and optimal use cases.",
	},
	"safety-protocols": {
		title: "Safety Protocols in High-Rise Demolition Projects",
		meta:  "Critical safety protocols and procedures for high-rise demolition to ensure worker and public safety.",
	},
	"environmental": {
		title: "Environmental Considerations in Modern Demolition",
		meta:  "Understanding environmental impact and sustainable practices in demolition projects.",
	},
	"cost-factors": {
		title: "Understanding Cost Factors in Demolition Projects",
		meta:  "Detailed analysis of cost factors affecting demolition project budgets and pricing strategies.",
	},
	"asbestos-removal": {
		title: "Asbestos Removal Procedures: A Complete Guide",
		meta:  "Safe and compliant asbestos removal procedures for demolition projects.",
	},
	"explosive-demolition": {
		title: "Explosive Demolition Techniques and Safety",
		meta:  "Professional guide to explosive demolition methods, planning, and safety requirements.",
	},
	"residential-vs-commercial": {
		title: "Residential vs Commercial Demolition: Key Differences",
		meta:  "Understanding the distinct requirements and approaches for residential versus commercial demolition.",
	},
}
