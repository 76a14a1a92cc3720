package endpoints

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

var titleTopics = []string{
	"Инновации", "Технологии", "Будущее", "Стратегия", "Развитие",
	"Трансформация", "Решения", "Возможности", "Перспективы", "Прогресс",
	"Эффективность", "Качество", "Успех", "Рост", "Изменения",
}

// Every context starts with the preposition "в ".
var titleContexts = []string{
	"в бизнесе", "в образовании", "в медицине", "в науке", "в IT",
	"в маркетинге", "в управлении", "в производстве", "в финансах", "в логистике",
	"в дизайне", "в архитектуре", "в экологии", "в спорте", "в культуре",
}

var titleActions = []string{
	"Новые подходы к", "Современные методы", "Актуальные тренды",
	"Эффективные стратегии", "Инновационные решения", "Практические аспекты",
	"Ключевые факторы", "Основные принципы", "Лучшие практики",
	"Передовой опыт", "Комплексный анализ", "Системный подход к",
}

var titleSubtitles = []string{
	"Практические рекомендации и кейсы",
	"Анализ современных тенденций",
	"Пошаговое руководство к успеху",
	"Опыт ведущих экспертов",
	"Стратегии и тактики реализации",
	"Инструменты и методики",
	"Тренды и прогнозы развития",
}

type titleTemplate func(r Rand) string

var titleTemplates = []titleTemplate{
	func(r Rand) string {
		return pick(r, titleTopics) + " " + pick(r, titleContexts)
	},
	func(r Rand) string {
		return pick(r, titleActions) + " " + strings.ToLower(pick(r, titleTopics))
	},
	func(r Rand) string {
		return "Как достичь " + strings.ToLower(pick(r, titleTopics)) + " " + pick(r, titleContexts)
	},
	func(r Rand) string {
		return pick(r, titleTopics) + ": " + strings.TrimPrefix(pick(r, titleContexts), "в ") + " перспективы"
	},
	func(r Rand) string {
		return "От идеи к результату: " + strings.ToLower(pick(r, titleTopics)) + " " + pick(r, titleContexts)
	},
}

type TitleResponse struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Timestamp string `json:"timestamp"`
}

// PresentationTitle returns a random presentation title and subtitle.
func PresentationTitle(_ context.Context, request events.APIGatewayProxyRequest, deps Dependencies) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodOptions:
		return preflight("GET, OPTIONS", "Content-Type"), nil
	case http.MethodGet:
	default:
		return methodNotAllowed(deps.Headers), nil
	}

	title := pick(deps.Rand, titleTemplates)(deps.Rand)
	return jsonResponse(200, TitleResponse{
		Title:     title,
		Subtitle:  pick(deps.Rand, titleSubtitles),
		Timestamp: "generated",
	}, deps.Headers), nil
}
