package spot

import (
	"fmt"
	"strings"

	"spot-scraper/pkg/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	topicDescriptionSelector = "#dashboard div"
	topicAccessTimeSelector  = ".panel-heading p"
	contentSelector          = "#materi .row .col-lg-12"
	youtubeSelector          = "iframe[src*='youtube.com']"

	taskTableSelector      = "#tugas .table-striped"
	taskModalSelector      = "#tugas .modal"
	statusPanelClass       = "panel-info"
	submissionFileSelector = "a[href*='/tugas/mhs']"
	answerDeleteSelector   = "a[href*='tugas_del']"

	labelTitle       = "Judul"
	labelDescription = "Deskripsi"
	labelFile        = "File"
	labelSubmission  = "Waktu Pengumpulan"
	labelScore       = "Nilai"
	labelNotes       = "Catatan"
)

// TopicDetail reads a topic page. The page does not echo its own ids reliably so the
// caller supplies them.
func (p Parser) TopicDetail(markup string, courseID, topicID int64) (TopicDetail, error) {
	doc, err := p.document(markup, "topic detail")
	if err != nil {
		return TopicDetail{}, err
	}

	detail := TopicDetail{
		ID:           topicID,
		CourseID:     courseID,
		IsAccessible: true,
		Href:         fmt.Sprintf("/mhs/topik/%d/%d", courseID, topicID),
		Contents:     []ContentItem{},
		Tasks:        []TaskRecord{},
	}

	if desc := doc.Find(topicDescriptionSelector).First(); desc.Length() > 0 {
		text := strings.TrimSpace(desc.Text())
		detail.Description = &text
	}
	if heading := doc.Find(topicAccessTimeSelector).First(); heading.Length() > 0 {
		detail.AccessTime = ParseTimestamp(strings.ReplaceAll(heading.Text(), accessTimeLabel, ""))
	}

	doc.Find(contentSelector).Each(func(i int, block *goquery.Selection) {
		detail.Contents = append(detail.Contents, p.readContent(i, block))
	})

	for _, block := range collectTaskBlocks(doc) {
		detail.Tasks = append(detail.Tasks, p.readTask(block, courseID, topicID))
	}

	p.tel.ReportDebug("topic detail", topicID, len(detail.Contents), len(detail.Tasks))
	return detail, nil
}

func (p Parser) readContent(index int, block *goquery.Selection) ContentItem {
	item := ContentItem{
		ID:    index,
		Links: htmlutil.GetAnchors(block.Find("a")),
	}

	raw, err := block.Html()
	if err != nil {
		p.tel.ReportBroken(report_parser_topic_detail, fmt.Errorf("serialize content %d: %w", index, err))
	}
	item.RawHTML = raw

	if src, ok := block.Find(youtubeSelector).First().Attr("src"); ok {
		if id, ok := YoutubeID(src); ok {
			item.YoutubeID = &id
		}
	}
	return item
}

// taskBlock is one task's instruction table paired with the elements that carry the
// rest of its state.
type taskBlock struct {
	index        int
	instructions *goquery.Selection
	// panel is the element right after the instruction table if it is a status panel
	panel *goquery.Selection
	// modal is the submission form at the same index as the instruction table
	modal *goquery.Selection
}

// collectTaskBlocks pairs every instruction table with its next element sibling and the
// modal at the same position. The portal correlates a table with its answer only by
// adjacency, so this is where that coupling lives.
func collectTaskBlocks(doc *goquery.Document) []taskBlock {
	tables := doc.Find(taskTableSelector)
	modals := doc.Find(taskModalSelector)

	blocks := make([]taskBlock, tables.Length())
	tables.Each(func(i int, table *goquery.Selection) {
		block := taskBlock{
			index:        i,
			instructions: table,
		}
		if next := table.Next(); next.Length() > 0 && hasClassFold(next, statusPanelClass) {
			block.panel = next
		}
		if i < modals.Length() {
			block.modal = modals.Eq(i)
		}
		blocks[i] = block
	})
	return blocks
}

func hasClassFold(sel *goquery.Selection, class string) bool {
	for _, c := range strings.Fields(sel.AttrOr("class", "")) {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}

func (p Parser) readTask(block taskBlock, courseID, topicID int64) TaskRecord {
	task := TaskRecord{
		CourseID: courseID,
		TopicID:  topicID,
	}

	block.instructions.Find("tbody > tr").Each(func(_ int, row *goquery.Selection) {
		label, ok := htmlutil.CellText(row, 0)
		if !ok {
			return
		}
		switch label {
		case labelTitle:
			task.Title, _ = htmlutil.CellText(row, 1)
		case labelDescription:
			task.Description, _ = htmlutil.CellText(row, 1)
		case labelFile:
			if href, ok := htmlutil.CellHref(row, 1); ok {
				task.File = &href
			}
		case labelSubmission:
			// "<b>start</b> s/d <b>due</b>"
			dates := row.Find("b")
			if dates.Length() >= 2 {
				task.StartDate = ParseTimestamp(dates.Eq(0).Text())
				task.DueDate = ParseTimestamp(dates.Eq(1).Text())
			}
		}
	})

	facts := TaskFacts{HasStatusPanel: block.panel != nil}
	if block.panel != nil {
		answer, hasScore := readAnswer(block.panel)
		facts.HasScoreRow = hasScore
		task.Answer = &answer
	}
	task.Status = DeriveTaskStatus(facts)

	if block.modal != nil {
		task.ID = block.modal.Find("input[name='id_tg']").First().AttrOr("value", "")
		task.Token = block.modal.Find("input[name='_token']").First().AttrOr("value", "")
	}
	if task.ID == "" {
		p.tel.ReportDebug("task without submission form", topicID, block.index)
	}

	return task
}

func readAnswer(panel *goquery.Selection) (answer AnswerRecord, hasScore bool) {
	panel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		label, ok := htmlutil.CellText(row, 0)
		if !ok {
			return
		}
		value, _ := htmlutil.CellText(row, 1)
		switch label {
		case labelSubmission:
			answer.DateSubmitted = ParseTimestamp(value)
		case labelScore:
			answer.Score = ParseScore(value)
			answer.IsGraded = true
			hasScore = true
		case labelNotes:
			answer.LecturerNotes = value
		}
	})

	body := panel.Find(".panel-body").First()
	if body.Length() == 0 {
		return answer, hasScore
	}

	answer.Content = htmlutil.DirectText(body)

	if href, ok := body.Find(submissionFileSelector).First().Attr("href"); ok {
		fixed := SubmissionFileHref(href)
		answer.FileHref = &fixed
	}
	if href, ok := body.Find(answerDeleteSelector).First().Attr("href"); ok {
		if id, ok := IDFromPath(href); ok {
			answer.ID = &id
		}
	}

	return answer, hasScore
}
