package assessment

// BotStrings holds the fixed chat-mode bot messages for one language.
// Format verbs are filled by the dialogue controller.
type BotStrings struct {
	Greeting1        string
	Greeting2        string
	AskContactAgain  string
	NiceToMeet       string // %s = client name
	NiceToMeetNoName string
	AskCompany       string
	CompanyAckFull   string // %s = company name, %s = industry
	CompanyAck       string // %s = industry
	AskCompanyAgain  string
	ReadyIntro       string
	SectionIntro     string // %s = section title
	CompleteThanks   string
	Analyzing        string
	ProposalReady    string
	ProposalFailed   string
	AlreadyComplete  string
	SummaryFallback  string // %s = section title
}

// UIStrings returns the bot string table for a language, defaulting to
// English.
func UIStrings(lang string) *BotStrings {
	if lang == LangSpanish {
		return &botStringsES
	}
	return &botStringsEN
}

var botStringsEN = BotStrings{
	Greeting1:        "Hello! 👋 I'm your AI transformation consultant. I'll help assess your business needs through a friendly conversation instead of a lengthy form.",
	Greeting2:        "First, could you tell me your name and email so I can save our conversation?",
	AskContactAgain:  "I didn't catch your email. Could you share your name and email address? For example: 'I'm John Doe, john@company.com'",
	NiceToMeet:       "Nice to meet you, %s! 🎯",
	NiceToMeetNoName: "Nice to meet you! 🎯",
	AskCompany:       "Before we dive in, tell me a bit about your company - what's the company name, which industry are you in, and how many employees do you have?",
	CompanyAckFull:   "Great! %s in %s - that's perfect! 🏢",
	CompanyAck:       "Great! %s - that's perfect! 🏢",
	AskCompanyAgain:  "I didn't quite get that. Could you tell me your company name, industry, and size? For example: 'We're TechCorp, a technology company with 200 employees'",
	ReadyIntro:       "I'll tailor my questions based on your industry. Let's explore 7 key areas to understand your digital transformation needs. Ready?",
	SectionIntro:     "Now let's move to %s.",
	CompleteThanks:   "🎉 Excellent! We've covered everything. Thank you for sharing all that valuable information!",
	Analyzing:        "📊 I'm now analyzing your responses and generating a comprehensive transformation proposal tailored to your needs...",
	ProposalReady:    "✅ Your personalized transformation proposal is ready! Scroll down to view the detailed recommendations, KPIs, and implementation roadmap.",
	ProposalFailed:   "⚠️ There was an issue generating the proposal. Your responses have been saved, and you can export the data.",
	AlreadyComplete:  "Thanks! Your assessment is complete. Feel free to reach out if you have any questions or want to discuss next steps!",
	SummaryFallback:  "Great work on %s!",
}

var botStringsES = BotStrings{
	Greeting1:        "¡Hola! 👋 Soy su consultor de transformación con IA. Le ayudaré a evaluar las necesidades de su negocio mediante una conversación amigable en lugar de un formulario extenso.",
	Greeting2:        "Primero, ¿podría decirme su nombre y correo electrónico para guardar nuestra conversación?",
	AskContactAgain:  "No capté su correo. ¿Podría compartir su nombre y correo electrónico? Por ejemplo: 'Soy Juan Pérez, juan@empresa.com'",
	NiceToMeet:       "¡Mucho gusto, %s! 🎯",
	NiceToMeetNoName: "¡Mucho gusto! 🎯",
	AskCompany:       "Antes de comenzar, cuénteme un poco sobre su empresa: ¿cuál es el nombre, en qué industria está y cuántos empleados tiene?",
	CompanyAckFull:   "¡Genial! %s en %s - ¡perfecto! 🏢",
	CompanyAck:       "¡Genial! %s - ¡perfecto! 🏢",
	AskCompanyAgain:  "No entendí bien. ¿Podría decirme el nombre de su empresa, la industria y el tamaño? Por ejemplo: 'Somos TechCorp, una empresa de tecnología con 200 empleados'",
	ReadyIntro:       "Adaptaré mis preguntas según su industria. Exploremos 7 áreas clave para entender sus necesidades de transformación digital. ¿Listo?",
	SectionIntro:     "Ahora pasemos a %s.",
	CompleteThanks:   "🎉 ¡Excelente! Hemos cubierto todo. ¡Gracias por compartir toda esa información valiosa!",
	Analyzing:        "📊 Ahora estoy analizando sus respuestas y generando una propuesta de transformación integral adaptada a sus necesidades...",
	ProposalReady:    "✅ ¡Su propuesta de transformación personalizada está lista! Desplácese hacia abajo para ver las recomendaciones detalladas, los KPIs y la hoja de ruta de implementación.",
	ProposalFailed:   "⚠️ Hubo un problema al generar la propuesta. Sus respuestas se han guardado y puede exportar los datos.",
	AlreadyComplete:  "¡Gracias! Su evaluación está completa. No dude en contactarnos si tiene preguntas o quiere hablar de los siguientes pasos.",
	SummaryFallback:  "¡Buen trabajo en %s!",
}
