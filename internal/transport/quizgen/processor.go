// Package quizgen наполняет банки вопросов купленных курсов через внешний сервис генерации.
package quizgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/course-points/internal/service"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultAPITimeout             = 30 * time.Second
	defaultLimitPerIteration uint = 20
	defaultWorkers           uint = 4
)

// Processor фоновый обработчик очереди генерации вопросов.
//
// Генерация - best-effort: покупка курса уже закоммичена к моменту, когда задача попадает
// сюда, и ни одна ошибка генератора не влияет на покупку. Неудачные задачи возвращаются в
// очередь и будут подхвачены следующей итерацией.
type Processor struct {
	client            Client
	svs               Servicer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
}

// New создает новый экземпляр процессора генерации вопросов.
func New(svs Servicer, apiBaseURL string, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "quizgen",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		client:            NewHTTPClient(apiBaseURL),
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
	}
}

// SetLimitPerIteration устанавливает кол-во задач, обрабатываемых за одну итерацию.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	p.limitPerIteration = limit
	return p
}

// SetWorkers устанавливает кол-во воркеров, ходящих на API генератора.
func (p *Processor) SetWorkers(workers uint) *Processor {
	p.workers = workers
	return p
}

// Run запускает обработку задач в бесконечном цикле до отмены контекста.
//
// Алгоритм работы:
//  1. В каждой итерации через сервисный слой забирается пачка задач генерации
//     (объем лимитируется через SetLimitPerIteration).
//  2. N воркеров (SetWorkers) параллельно ходят на API генератора.
//  3. Результаты применяются через сервисный слой одним вызовом.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	for {
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		default:
			if err := p.process(ctx); err != nil {
				if !errors.Is(err, ErrNoJobs) {
					p.l.WithError(err).Error("process error")
				}
				time.Sleep(time.Second) // небольшая пауза чтоб не заддосить БД.
			}
		}
	}
}

// process выполняет одну итерацию: забор задач, генерация через API и применение результатов.
// Возвращает ErrNoJobs если очередь пуста.
func (p *Processor) process(ctx context.Context) error {
	tasks, tasksErr := p.produce(ctx)
	if tasksErr != nil {
		return fmt.Errorf("process: %w", tasksErr)
	}

	results := p.runWorkers(ctx, tasks)
	if len(results) == 0 {
		return nil
	}

	var updates = make([]service.ApplyGeneratedArgs, 0, len(results))
	for _, result := range results {
		updates = append(updates, service.ApplyGeneratedArgs{
			Error:     result.Error,
			JobID:     result.Task.JobID,
			CourseID:  result.Task.CourseID,
			Questions: result.Questions,
		})
	}

	reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	if applyErr := p.svs.ApplyGenerated(reqCtx, updates); applyErr != nil {
		return fmt.Errorf("process: %s", applyErr.Error())
	}
	return nil
}

// workerResult представляет результат работы воркера по одной задаче генерации.
type workerResult struct {
	WorkerID  uint
	Task      service.ProvisionTask
	Error     error
	Questions []service.GeneratedQuestion
}

// runWorkers запускает параллельных воркеров и ожидает конца их работы.
// Реализует паттерн fan-out/fan-in.
func (p *Processor) runWorkers(ctx context.Context, tasks []service.ProvisionTask) []workerResult {
	var taskCh = make(chan service.ProvisionTask, len(tasks))

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	wg.Add(int(p.workers)) //nolint:gosec

	var resultCh = make(chan *workerResult, len(tasks))

	for i := range p.workers {
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()

	close(resultCh)

	var results = make([]workerResult, 0, len(tasks))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":   result.WorkerID,
			"jobID":    result.Task.JobID,
			"courseID": result.Task.CourseID,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("generate questions for course")
		} else {
			l.WithField("questions", len(result.Questions)).Info("Success")
		}
		results = append(results, *result)
	}
	return results
}

// worker обрабатывает задачи из канала и отправляет результаты.
func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan service.ProvisionTask,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.processWorkerTask(ctx, workerID, task)
		}
	}
}

func (p *Processor) processWorkerTask(ctx context.Context, workerID uint, task service.ProvisionTask) *workerResult {
	reqCtx, cancel := context.WithTimeout(ctx, defaultAPITimeout)
	defer cancel()

	questions, err := p.client.Generate(reqCtx, task)
	return &workerResult{
		WorkerID:  workerID,
		Task:      task,
		Error:     err,
		Questions: questions,
	}
}

// produce забирает пачку задач генерации. Возвращает ErrNoJobs, если задач нет.
func (p *Processor) produce(ctx context.Context) ([]service.ProvisionTask, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	tasks, tasksErr := p.svs.TasksForProvisioning(produceCtx, p.limitPerIteration)
	if tasksErr != nil {
		return nil, fmt.Errorf("produce: %w", tasksErr)
	}

	if len(tasks) == 0 {
		return nil, ErrNoJobs
	}
	return tasks, nil
}
