package assessment

import (
	"fmt"
	"strings"

	"github.com/arctika/intake/internal/models"
)

// LangEnglish and LangSpanish are the supported catalog languages.
const (
	LangEnglish = "en"
	LangSpanish = "es"
)

// Catalog returns the fixed 7-section question set for a language. Unknown
// languages fall back to English. The returned slice is a fresh copy; a
// language change regenerates the set and invalidates in-progress cursors.
func Catalog(lang string) []models.Section {
	src := sectionsEN
	if lang == LangSpanish {
		src = sectionsES
	}
	out := make([]models.Section, len(src))
	for i, s := range src {
		qs := make([]string, len(s.Questions))
		copy(qs, s.Questions)
		out[i] = models.Section{Title: s.Title, Icon: s.Icon, Questions: qs}
	}
	return out
}

// ConversationalQuestion returns the chat-mode phrasing of a question.
func ConversationalQuestion(lang string, sectionIdx, questionIdx int) string {
	src := conversationalEN
	if lang == LangSpanish {
		src = conversationalES
	}
	if sectionIdx < 0 || sectionIdx >= len(src) {
		return ""
	}
	qs := src[sectionIdx]
	if questionIdx < 0 || questionIdx >= len(qs) {
		return ""
	}
	return qs[questionIdx]
}

// AnswerKey is the composite key an answer is stored under.
func AnswerKey(sectionIdx, questionIdx int) string {
	return fmt.Sprintf("section_%d_q_%d", sectionIdx, questionIdx)
}

// TotalQuestions counts questions across all sections of a catalog.
func TotalQuestions(sections []models.Section) int {
	total := 0
	for _, s := range sections {
		total += len(s.Questions)
	}
	return total
}

// CompletionPercent derives the completion percentage from the answer set:
// round(100 * non-empty answers / total questions).
func CompletionPercent(answers models.AnswerSet, sections []models.Section) int {
	total := TotalQuestions(sections)
	if total == 0 {
		return 0
	}
	answered := 0
	for _, v := range answers {
		if strings.TrimSpace(v) != "" {
			answered++
		}
	}
	return int(float64(answered)/float64(total)*100 + 0.5)
}

var sectionsEN = []models.Section{
	{
		Title: "Business Overview & Goals",
		Icon:  "🧭",
		Questions: []string{
			"What are the top 3 business goals you're focused on this year?",
			"Which metrics or KPIs define success for you? (e.g., revenue, efficiency, quality, safety, customer satisfaction)",
			"Who are your main customers or end users?",
			"What are the biggest challenges or bottlenecks in achieving your goals today?",
			"Are there specific areas where you feel technology could make the biggest impact?",
		},
	},
	{
		Title: "Current Processes & Operations",
		Icon:  "🧱",
		Questions: []string{
			"What are your most data-intensive or repetitive processes?",
			"How are decisions currently made — based on data, intuition, or experience?",
			"Which departments rely heavily on spreadsheets or manual tracking?",
			"Where do errors or delays most frequently occur?",
			"Are there processes that depend on a few key people's knowledge (tribal knowledge)?",
		},
	},
	{
		Title: "Data Infrastructure & Systems",
		Icon:  "💾",
		Questions: []string{
			"What systems do you use to manage your operations? (ERP, CRM, custom software, etc.)",
			"Where is your business data stored today? (Cloud, local servers, Excel, etc.)",
			"How often is your data updated and how clean is it?",
			"Do your systems talk to each other (APIs, integrations), or are they siloed?",
			"Who owns data governance and security within your organization?",
			"Do you currently use any BI dashboards or analytics tools? (e.g., Power BI, Tableau, Streamlit, Excel)",
		},
	},
	{
		Title: "AI / Automation Readiness",
		Icon:  "🤖",
		Questions: []string{
			"Have you already implemented any AI, automation, or data analytics initiatives?",
			"Which areas do you think could benefit most from AI or predictive insights?",
			"Are your teams open to adopting AI-based tools in their workflows?",
			"How comfortable is your leadership with AI-driven decision-making?",
			"Do you have internal technical talent (data engineers, analysts, developers)?",
		},
	},
	{
		Title: "Strategy & Decision-Making",
		Icon:  "🧠",
		Questions: []string{
			"Who typically sponsors technology or transformation projects? (e.g., CEO, COO, IT head)",
			"What's your decision-making process for new technology investments?",
			"How quickly can your organization move from idea → pilot → rollout?",
			"Are there any current digital or automation initiatives underway?",
			"What budget or resources are typically available for innovation projects?",
		},
	},
	{
		Title: "Challenges & Risks",
		Icon:  "🔒",
		Questions: []string{
			"What do you see as the biggest risks to adopting AI or automation?",
			"Have you faced resistance from employees or leadership for past tech initiatives?",
			"Are there compliance, security, or data privacy concerns we should know about?",
			"What has prevented past transformation projects from succeeding?",
		},
	},
	{
		Title: "Future Vision & Opportunities",
		Icon:  "🌍",
		Questions: []string{
			"If technology could eliminate one major pain point, what would it be?",
			"Where do you want your organization to be in 2–3 years in terms of digital maturity?",
			"What would a successful AI transformation look like for you?",
			"Which business areas do you want to focus on first for measurable impact?",
			"How can we help you achieve that vision?",
		},
	},
}

var sectionsES = []models.Section{
	{
		Title: "Visión General del Negocio y Objetivos",
		Icon:  "🧭",
		Questions: []string{
			"¿Cuáles son los 3 objetivos de negocio principales en los que se enfoca este año?",
			"¿Qué métricas o KPIs definen el éxito para usted? (p. ej., ingresos, eficiencia, calidad, seguridad, satisfacción del cliente)",
			"¿Quiénes son sus principales clientes o usuarios finales?",
			"¿Cuáles son los mayores desafíos o cuellos de botella para lograr sus objetivos hoy?",
			"¿Hay áreas específicas donde cree que la tecnología podría tener el mayor impacto?",
		},
	},
	{
		Title: "Procesos Actuales y Operaciones",
		Icon:  "🧱",
		Questions: []string{
			"¿Cuáles son sus procesos más repetitivos o intensivos en datos?",
			"¿Cómo se toman las decisiones actualmente: con datos, intuición o experiencia?",
			"¿Qué departamentos dependen en gran medida de hojas de cálculo o seguimiento manual?",
			"¿Dónde ocurren errores o retrasos con mayor frecuencia?",
			"¿Existen procesos que dependen del conocimiento de unas pocas personas clave?",
		},
	},
	{
		Title: "Infraestructura de Datos y Sistemas",
		Icon:  "💾",
		Questions: []string{
			"¿Qué sistemas utiliza para gestionar sus operaciones? (ERP, CRM, software a medida, etc.)",
			"¿Dónde se almacenan hoy los datos de su negocio? (Nube, servidores locales, Excel, etc.)",
			"¿Con qué frecuencia se actualizan sus datos y qué tan limpios están?",
			"¿Sus sistemas se comunican entre sí (APIs, integraciones) o están aislados?",
			"¿Quién es responsable de la gobernanza y seguridad de los datos en su organización?",
			"¿Utiliza actualmente algún panel de BI o herramienta de analítica? (p. ej., Power BI, Tableau, Streamlit, Excel)",
		},
	},
	{
		Title: "Preparación para IA / Automatización",
		Icon:  "🤖",
		Questions: []string{
			"¿Ya ha implementado alguna iniciativa de IA, automatización o analítica de datos?",
			"¿Qué áreas cree que podrían beneficiarse más de la IA o de insights predictivos?",
			"¿Están sus equipos abiertos a adoptar herramientas basadas en IA en sus flujos de trabajo?",
			"¿Qué tan cómodo se siente su liderazgo con la toma de decisiones impulsada por IA?",
			"¿Cuenta con talento técnico interno (ingenieros de datos, analistas, desarrolladores)?",
		},
	},
	{
		Title: "Estrategia y Toma de Decisiones",
		Icon:  "🧠",
		Questions: []string{
			"¿Quién suele patrocinar los proyectos de tecnología o transformación? (p. ej., CEO, COO, responsable de TI)",
			"¿Cuál es su proceso de decisión para nuevas inversiones en tecnología?",
			"¿Qué tan rápido puede su organización pasar de idea → piloto → despliegue?",
			"¿Hay iniciativas digitales o de automatización actualmente en marcha?",
			"¿Qué presupuesto o recursos suelen estar disponibles para proyectos de innovación?",
		},
	},
	{
		Title: "Desafíos y Riesgos",
		Icon:  "🔒",
		Questions: []string{
			"¿Cuáles considera los mayores riesgos de adoptar IA o automatización?",
			"¿Ha enfrentado resistencia de empleados o del liderazgo en iniciativas tecnológicas pasadas?",
			"¿Existen preocupaciones de cumplimiento, seguridad o privacidad de datos que debamos conocer?",
			"¿Qué ha impedido que proyectos de transformación anteriores tuvieran éxito?",
		},
	},
	{
		Title: "Visión Futura y Oportunidades",
		Icon:  "🌍",
		Questions: []string{
			"Si la tecnología pudiera eliminar un gran punto de dolor, ¿cuál sería?",
			"¿Dónde quiere que esté su organización en 2–3 años en términos de madurez digital?",
			"¿Cómo sería para usted una transformación de IA exitosa?",
			"¿En qué áreas de negocio quiere enfocarse primero para lograr un impacto medible?",
			"¿Cómo podemos ayudarle a alcanzar esa visión?",
		},
	},
}

var conversationalEN = [][]string{
	{
		"Let's start with your goals. What are the top 3 business goals you're focused on this year?",
		"Great! Now, which metrics or KPIs are most important for measuring your success? Things like revenue, efficiency, quality, or customer satisfaction?",
		"Who would you say are your main customers or end users?",
		"What are the biggest challenges or bottlenecks preventing you from achieving these goals?",
		"Are there any specific areas where you think technology could make the biggest impact?",
	},
	{
		"Now let's talk about your day-to-day operations. What are your most data-intensive or repetitive processes?",
		"How are decisions typically made in your organization - based on data, intuition, or experience?",
		"Which departments rely heavily on spreadsheets or manual tracking?",
		"Where do errors or delays most frequently occur in your operations?",
		"Are there any processes that depend heavily on specific people's knowledge?",
	},
	{
		"Let's discuss your data and systems. What systems do you currently use to manage operations - like ERP, CRM, or custom software?",
		"Where is your business data stored today? Cloud, local servers, Excel files?",
		"How often is your data updated, and would you say it's clean and reliable?",
		"Do your different systems communicate with each other, or are they siloed?",
		"Who's responsible for data governance and security in your organization?",
		"Do you use any BI dashboards or analytics tools like Power BI, Tableau, or even Excel?",
	},
	{
		"Now onto AI and automation. Have you already implemented any AI, automation, or analytics initiatives?",
		"Which areas do you think could benefit most from AI or predictive insights?",
		"How open are your teams to adopting AI-based tools in their daily work?",
		"How comfortable is your leadership team with AI-driven decision-making?",
		"Do you have internal technical talent like data engineers, analysts, or developers?",
	},
	{
		"Let's talk about strategy and decision-making. Who typically sponsors technology or transformation projects in your company?",
		"What's your decision-making process for new technology investments?",
		"How quickly can your organization typically move from idea to pilot to full rollout?",
		"Are there any digital or automation initiatives currently underway?",
		"What budget or resources are typically available for innovation projects?",
	},
	{
		"Now, let's be honest about challenges. What do you see as the biggest risks to adopting AI or automation?",
		"Have you faced resistance from employees or leadership with past tech initiatives?",
		"Are there any compliance, security, or data privacy concerns I should know about?",
		"What has prevented past transformation projects from succeeding?",
	},
	{
		"Finally, let's talk about your vision for the future. If technology could eliminate one major pain point, what would it be?",
		"Where do you want your organization to be in 2-3 years in terms of digital maturity?",
		"What would a successful AI transformation look like for you?",
		"Which business areas do you want to focus on first for measurable impact?",
		"How can we help you achieve that vision?",
	},
}

var conversationalES = [][]string{
	{
		"Empecemos con sus objetivos. ¿Cuáles son los 3 objetivos de negocio principales en los que se enfoca este año?",
		"¡Genial! Ahora, ¿qué métricas o KPIs son más importantes para medir su éxito? ¿Ingresos, eficiencia, calidad o satisfacción del cliente?",
		"¿Quiénes diría que son sus principales clientes o usuarios finales?",
		"¿Cuáles son los mayores desafíos o cuellos de botella que le impiden lograr estos objetivos?",
		"¿Hay áreas específicas donde cree que la tecnología podría tener el mayor impacto?",
	},
	{
		"Ahora hablemos de sus operaciones diarias. ¿Cuáles son sus procesos más repetitivos o intensivos en datos?",
		"¿Cómo se toman normalmente las decisiones en su organización: con datos, intuición o experiencia?",
		"¿Qué departamentos dependen en gran medida de hojas de cálculo o seguimiento manual?",
		"¿Dónde ocurren errores o retrasos con mayor frecuencia en sus operaciones?",
		"¿Hay procesos que dependen en gran medida del conocimiento de personas específicas?",
	},
	{
		"Hablemos de sus datos y sistemas. ¿Qué sistemas utiliza actualmente para gestionar operaciones, como ERP, CRM o software a medida?",
		"¿Dónde se almacenan hoy los datos de su negocio? ¿Nube, servidores locales, archivos de Excel?",
		"¿Con qué frecuencia se actualizan sus datos, y diría que son limpios y confiables?",
		"¿Sus distintos sistemas se comunican entre sí o están aislados?",
		"¿Quién es responsable de la gobernanza y seguridad de los datos en su organización?",
		"¿Usa algún panel de BI o herramienta de analítica como Power BI, Tableau o incluso Excel?",
	},
	{
		"Pasemos a la IA y la automatización. ¿Ya ha implementado alguna iniciativa de IA, automatización o analítica?",
		"¿Qué áreas cree que podrían beneficiarse más de la IA o de insights predictivos?",
		"¿Qué tan abiertos están sus equipos a adoptar herramientas basadas en IA en su trabajo diario?",
		"¿Qué tan cómodo se siente su equipo de liderazgo con la toma de decisiones impulsada por IA?",
		"¿Cuenta con talento técnico interno como ingenieros de datos, analistas o desarrolladores?",
	},
	{
		"Hablemos de estrategia y toma de decisiones. ¿Quién suele patrocinar los proyectos de tecnología o transformación en su empresa?",
		"¿Cuál es su proceso de decisión para nuevas inversiones en tecnología?",
		"¿Qué tan rápido puede su organización pasar normalmente de idea a piloto a despliegue completo?",
		"¿Hay iniciativas digitales o de automatización actualmente en marcha?",
		"¿Qué presupuesto o recursos suelen estar disponibles para proyectos de innovación?",
	},
	{
		"Ahora, seamos honestos sobre los desafíos. ¿Cuáles considera los mayores riesgos de adoptar IA o automatización?",
		"¿Ha enfrentado resistencia de empleados o del liderazgo en iniciativas tecnológicas pasadas?",
		"¿Hay preocupaciones de cumplimiento, seguridad o privacidad de datos que deba conocer?",
		"¿Qué ha impedido que proyectos de transformación anteriores tuvieran éxito?",
	},
	{
		"Por último, hablemos de su visión de futuro. Si la tecnología pudiera eliminar un gran punto de dolor, ¿cuál sería?",
		"¿Dónde quiere que esté su organización en 2-3 años en términos de madurez digital?",
		"¿Cómo sería para usted una transformación de IA exitosa?",
		"¿En qué áreas de negocio quiere enfocarse primero para lograr un impacto medible?",
		"¿Cómo podemos ayudarle a alcanzar esa visión?",
	},
}
