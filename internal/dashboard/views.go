package dashboard

import (
	"fmt"

	"github.com/farolia/farol/domain/entities"
)

// View is one entry of the dashboard sidebar.
type View struct {
	ID    string
	Title string
	Icon  string
}

// View identifiers, in sidebar order.
const (
	ViewWelcome    = "boas-vindas"
	ViewSignup     = "cadastro"
	ViewHome       = "home"
	ViewJobs       = "vagas"
	ViewLearning   = "hub"
	ViewMatches    = "matches"
	ViewInterview  = "entrevista"
	ViewSimulation = "simulacao"
	ViewFeedback   = "feedback"
)

var views = []View{
	{ID: ViewWelcome, Title: "Boas-vindas", Icon: "👋"},
	{ID: ViewSignup, Title: "Cadastro por Voz", Icon: "📝"},
	{ID: ViewHome, Title: "Home", Icon: "🏠"},
	{ID: ViewJobs, Title: "Vagas", Icon: "💼"},
	{ID: ViewLearning, Title: "Hub de Desenvolvimento", Icon: "🧩"},
	{ID: ViewMatches, Title: "Análise de Matches", Icon: "🎯"},
	{ID: ViewInterview, Title: "Entrevista (Realtime)", Icon: "🎙️"},
	{ID: ViewSimulation, Title: "Simulação em Andamento", Icon: "🟢"},
	{ID: ViewFeedback, Title: "Feedback", Icon: "📊"},
}

// Views returns the sidebar entries in display order.
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

func lookupView(id string) (View, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// Card is a titled block of placeholder content. Dest, when set, is the view
// the card navigates to.
type Card struct {
	Title  string
	Body   string
	Dest   string
	Action string
}

type KPI struct {
	Label string
	Value string
	Hint  string
}

type Match struct {
	Role      string
	Candidate string
	Score     int
	Skills    []string
}

var welcomeCards = []Card{
	{Title: "Cadastro guiado", Body: "Preencha seu perfil falando.", Dest: ViewSignup},
	{Title: "Assistente de carreira", Body: "Recomenda vagas e cursos.", Dest: ViewJobs},
	{Title: "Simulador de entrevista", Body: "Converse em tempo real e receba feedback.", Dest: ViewInterview},
}

var homeKPIs = []KPI{
	{Label: "Progresso no Hub", Value: "42%", Hint: "Módulos finalizados"},
	{Label: "Entrevistas concluídas", Value: "3", Hint: "Última há 2 dias"},
	{Label: "Vagas alinhadas", Value: "12", Hint: "filtradas para seu perfil"},
	{Label: "Feedback médio", Value: "8.5", Hint: "de 0 a 10"},
}

func jobCards() []Card {
	jobs := make([]Card, 0, 6)
	for i := 1; i <= 6; i++ {
		jobs = append(jobs, Card{
			Title:  fmt.Sprintf("Vaga #%d · Dev Acessível", i),
			Body:   "Empresa X · Remoto · Pleno. Requisitos: WAI-ARIA, acessibilidade web, testes automatizados.",
			Action: "Candidatar-se",
		})
	}
	return jobs
}

type Filter struct {
	Label   string
	Options []string
}

var jobFilters = []Filter{
	{Label: "Área", Options: []string{"Desenvolvimento", "QA", "Design", "Dados"}},
	{Label: "Nível", Options: []string{"Júnior", "Pleno", "Sênior"}},
	{Label: "Modelo", Options: workModels},
	{Label: "Acessibilidade", Options: []string{"Leitor de tela", "Alto contraste", "Navegação por voz"}},
}

var coreCourses = []Card{
	{Title: "Trilha ARIA Essentials", Body: "Domine papéis, estados e propriedades.", Action: "Iniciar"},
	{Title: "Acessibilidade em React", Body: "Padrões, focos e atalhos.", Action: "Iniciar"},
	{Title: "Testes automatizados", Body: "axe-core + Playwright.", Action: "Iniciar"},
	{Title: "Navegação por voz", Body: "Comandos e SR.", Action: "Iniciar"},
	{Title: "Escrita inclusiva", Body: "Tom, legibilidade e UX writing.", Action: "Iniciar"},
	{Title: "WAI e WCAG 2.2", Body: "Critérios e checklists.", Action: "Iniciar"},
	{Title: "Leitor de tela", Body: "NVDA/JAWS: boas práticas.", Action: "Iniciar"},
	{Title: "Portfólio acessível", Body: "Componentes e exemplos.", Action: "Iniciar"},
}

var recommendedCourses = []Card{
	{Title: "Introdução ao HTML5 Semântico", Body: "Aprenda a estruturar páginas com acessibilidade desde o início.", Action: "Ver mais"},
	{Title: "Design Inclusivo", Body: "Princípios de UX focados em diversidade e inclusão.", Action: "Ver mais"},
	{Title: "Python para Análise de Dados", Body: "Manipulação de dados acessível e análise exploratória.", Action: "Ver mais"},
	{Title: "Comunicação Efetiva", Body: "Melhore suas soft skills e apresentações.", Action: "Ver mais"},
	{Title: "Introdução ao Machine Learning", Body: "Fundamentos e primeiros passos em ML.", Action: "Ver mais"},
	{Title: "Git e Versionamento", Body: "Controle de versões e colaboração em projetos.", Action: "Ver mais"},
}

var matches = []Match{
	{
		Role:      "Desenvolvedor Java Sênior (PJe)",
		Candidate: "Mariana Silva",
		Score:     92,
		Skills:    []string{"Java", "SQL", "Banco de Dados PJe", "Comunicação"},
	},
	{
		Role:      "Frontend Developer Pleno (Angular)",
		Candidate: "Rafael Costa",
		Score:     85,
		Skills:    []string{"Angular", "TypeScript", "CSS", "Trabalho em Equipe"},
	},
}

type FeedbackCard struct {
	Title   string
	Bullets []string
}

var feedbackCards = []FeedbackCard{
	{Title: "Pontos fortes", Bullets: []string{"Comunicação clara", "Conceitos ARIA corretos", "Boa senioridade em testes"}},
	{Title: "Oportunidades de melhoria", Bullets: []string{"Estruturar STAR", "Detalhar métricas de impacto", "Falar de trade-offs"}},
}

var workModels = []string{entities.WorkModelRemote, entities.WorkModelHybrid, entities.WorkModelOnSite}

var accessibilityOptions = []string{"Leitor de tela", "Alto contraste", "Navegação por voz", "Subtítulos automáticos"}
