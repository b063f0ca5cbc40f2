package service

import (
	"math/rand/v2"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// AIScore is one canned evaluation drawn from the grade book.
type AIScore struct {
	Score   int
	Comment string
}

// ScoringService resolves a score and feedback for a submitted artifact. There
// is no model inference behind it: candidates come from a fixed table and the
// OCR text only nudges the feedback through simple keyword checks.
type ScoringService interface {
	Score(extractedText, fileName string) AIScore
}

type cannedScoring struct {
	book      []AIScore
	pick      func(n int) int
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewCannedScoringService builds the scorer over the static grade book.
func NewCannedScoringService(logger zerolog.Logger) ScoringService {
	return &cannedScoring{
		book:      gradeBook,
		pick:      rand.IntN,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "canned_scoring").Logger(),
	}
}

func (s *cannedScoring) Score(extractedText, fileName string) AIScore {
	entry := s.book[s.pick(len(s.book))]
	comment := entry.Comment

	text := strings.ToLower(strings.TrimSpace(s.sanitizer.Sanitize(extractedText)))
	if len([]rune(text)) > 10 {
		if strings.Contains(text, "дизайн") || strings.Contains(text, "цвет") {
			comment += " Заметно хорошее понимание дизайнерских принципов в вашей работе."
		}
		if strings.Contains(text, "текст") || strings.Contains(text, "шрифт") {
			comment += " Отличная работа с типографикой!"
		}
	}

	s.logger.Debug().Int("score", entry.Score).Str("file_name", fileName).Msg("canned score resolved")

	return AIScore{Score: entry.Score, Comment: comment}
}

// gradeBook is static configuration data, not logic: swap the table without
// touching the scoring function's shape.
var gradeBook = []AIScore{
	{Score: 85, Comment: "Отличная работа! Ваш дизайн демонстрирует хорошее понимание композиции и цветовой гармонии. Сильные стороны: креативный подход к решению задачи. Возможные улучшения: добавить больше контраста в ключевых элементах."},
	{Score: 92, Comment: "Превосходное выполнение задания! Видно глубокое понимание принципов дизайна. Особенно впечатляет работа с типографикой и пространством. Продолжайте в том же духе!"},
	{Score: 80, Comment: "Хорошая работа с интересными идеями. Заметно внимание к деталям и качественное исполнение. Рекомендации: экспериментируйте больше с масштабом элементов для создания визуальной иерархии."},
	{Score: 88, Comment: "Творческое и профессиональное решение! Отличное использование цвета и формы. Ваша работа показывает развитое чувство стиля. Небольшое улучшение: добавить больше воздуха в композицию."},
	{Score: 95, Comment: "Исключительная работа! Все элементы гармонично взаимодействуют друг с другом. Прекрасное владение инструментами и техниками. Это пример качественного дизайнерского мышления."},
	{Score: 82, Comment: "Сильная работа с хорошими концептуальными решениями. Видно понимание целевой аудитории. Области для роста: поработать над балансом между текстом и изображениями."},
	{Score: 90, Comment: "Отличное техническое исполнение и креативность! Ваш подход к решению задачи впечатляет. Особенно удачно подобрана цветовая палитра. Продолжайте развивать свой уникальный стиль."},
	{Score: 83, Comment: "Добротная работа с интересными находками. Хорошо проработаны детали и общая концепция. Совет: попробуйте поэкспериментировать с более смелыми композиционными решениями."},
	{Score: 87, Comment: "Великолепное понимание принципов визуального дизайна! Четкая композиция и продуманная цветовая схема. Ваше техническое мастерство на высоком уровне. Рекомендация: добавить больше динамики в статичные элементы."},
	{Score: 91, Comment: "Профессиональный уровень исполнения! Видна тщательная проработка каждого элемента. Отличное чувство пропорций и ритма. Особенно удачно решена задача с ограниченной цветовой палитрой."},
	{Score: 84, Comment: "Качественная работа с хорошей концептуальной основой. Заметен индивидуальный подход к решению задачи. Сильные стороны: внимание к деталям. Совет: поработать над унификацией стилей элементов."},
	{Score: 89, Comment: "Впечатляющее владение цветом и формой! Ваша работа демонстрирует зрелое понимание дизайн-процесса. Особенно хорошо проработана визуальная иерархия. Продолжайте в этом направлении!"},
	{Score: 93, Comment: "Выдающаяся работа! Креативное решение с безупречным техническим исполнением. Видно глубокое понимание задачи и аудитории. Ваш подход к композиции заслуживает особого внимания."},
	{Score: 81, Comment: "Хорошая работа с продуманным подходом к решению. Заметны навыки работы с пространством и масштабом. Рекомендации: экспериментировать с более контрастными цветовыми сочетаниями для усиления воздействия."},
	{Score: 86, Comment: "Сильное дизайнерское решение! Отличная работа с типографикой и общей композицией. Ваш творческий подход выделяет работу среди других. Небольшая корректировка: усилить акценты на ключевых элементах."},
	{Score: 94, Comment: "Мастерское выполнение задания! Все аспекты работы находятся на высочайшем уровне. Превосходная гармония между функциональностью и эстетикой. Это пример того, как должен выглядеть качественный дизайн."},
	{Score: 80, Comment: "Добротная работа с интересными идеями. Видно понимание основ композиции и цвета. Хорошо проработанные детали. Область для развития: больше экспериментов с нестандартными решениями."},
	{Score: 88, Comment: "Отличное техническое исполнение! Ваша работа показывает зрелый подход к дизайну. Особенно удачно решены вопросы читаемости и визуального воздействия. Совет: добавить больше эмоциональности в решения."},
	{Score: 92, Comment: "Превосходная работа с глубоким пониманием задачи! Креативный подход сочетается с профессиональным исполнением. Ваше чувство стиля и владение инструментами на очень высоком уровне."},
	{Score: 85, Comment: "Качественное и продуманное решение! Видна систематичность в подходе и внимание к пользовательскому опыту. Хорошая работа с визуальной иерархией. Рекомендация: усилить контраст для лучшей читаемости."},
	{Score: 90, Comment: "Впечатляющая работа! Отличное сочетание креативности и функциональности. Ваш подход к использованию пространства заслуживает похвалы. Техническое исполнение на профессиональном уровне."},
	{Score: 83, Comment: "Хорошая концептуальная работа с интересными находками. Заметно развитое чувство композиции. Сильные стороны: работа с деталями и общая гармония. Совет: поэкспериментировать с масштабами элементов."},
	{Score: 87, Comment: "Сильное дизайнерское решение! Видно понимание современных трендов и классических принципов. Отличная работа с цветом и формой. Ваш индивидуальный стиль начинает проявляться очень ярко."},
	{Score: 96, Comment: "Исключительное мастерство! Ваша работа демонстрирует глубокое понимание всех аспектов дизайна. Безупречное техническое исполнение и креативный подход. Это работа профессионального уровня!"},
	{Score: 82, Comment: "Добротная работа с хорошими идеями. Заметен продуманный подход к решению задачи. Качественная проработка деталей. Область для роста: больше смелости в цветовых и композиционных решениях."},
	{Score: 89, Comment: "Отличная работа с сильной концепцией! Ваш подход к визуальной коммуникации очень эффективен. Особенно хорошо проработана типографика. Продолжайте развивать свой уникальный стиль!"},
	{Score: 91, Comment: "Превосходное выполнение с глубоким пониманием задачи! Креативное решение сочетается с безупречным техническим исполнением. Ваша работа с пространством и ритмом заслуживает особого внимания."},
	{Score: 84, Comment: "Качественная работа с хорошим пониманием принципов дизайна. Видна тщательная проработка каждого элемента. Сильные стороны: композиция и цветовое решение. Совет: добавить больше контраста для усиления воздействия."},
	{Score: 88, Comment: "Впечатляющее решение! Отличное владение инструментами и понимание задач дизайна. Ваш творческий подход выделяет работу. Особенно удачно решены вопросы визуальной иерархии и читаемости."},
	{Score: 93, Comment: "Выдающаяся работа профессионального уровня! Все элементы идеально сбалансированы и работают на общую идею. Ваше мастерство в области композиции и цвета достойно восхищения."},
	{Score: 81, Comment: "Хорошая работа с интересными концептуальными решениями. Заметно внимание к деталям и общей гармонии. Техническое исполнение на хорошем уровне. Рекомендация: больше экспериментов с динамичными элементами."},
	{Score: 86, Comment: "Сильное дизайнерское мышление! Ваш подход к решению задач креативен и эффективен. Отличная работа с пропорциями и ритмом. Видно понимание современных требований к дизайну."},
	{Score: 95, Comment: "Мастерская работа! Идеальное сочетание творческого подхода и технического мастерства. Ваше решение демонстрирует глубокое понимание принципов визуальной коммуникации. Продолжайте в том же духе!"},
	{Score: 80, Comment: "Добротное выполнение с хорошими идеями. Видна систематичность в подходе к работе. Качественная проработка основных элементов. Совет: поработать над созданием более ярких визуальных акцентов."},
	{Score: 87, Comment: "Отличная работа с сильной концептуальной основой! Ваше понимание задач дизайна находится на высоком уровне. Особенно хорошо решены вопросы композиции и цветового баланса."},
	{Score: 92, Comment: "Превосходное мастерство! Ваша работа демонстрирует зрелый подход к дизайну и глубокое понимание визуальной коммуникации. Техническое исполнение и креативность на очень высоком уровне."},
}
