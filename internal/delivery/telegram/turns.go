package telegram

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/yourusername/presupuestos-bot/internal/domain/constants"
)

// turnRequest un mensaje de texto pendiente de procesar
type turnRequest struct {
	chatID int64
	text   string
}

const (
	defaultWorkerCount = 8
	turnQueueSize      = 100
	turnTimeout        = constants.TurnTimeoutSeconds * time.Second
)

// turnPool procesa turnos en paralelo entre chats pero serializa dentro de
// cada chat: mientras un turno está en vuelo, los mensajes siguientes del
// mismo chat se rechazan con un aviso. El timeout por turno acota el fetch
// del catálogo y la llamada al extractor IA.
type turnPool struct {
	queue       chan *turnRequest
	workerCount int
	handler     *BotHandler
	wg          sync.WaitGroup

	inFlightMu sync.Mutex
	inFlight   map[int64]bool
}

func newTurnPool(handler *BotHandler, workerCount int) *turnPool {
	if workerCount <= 0 {
		workerCount = defaultWorkerCount
	}
	return &turnPool{
		queue:       make(chan *turnRequest, turnQueueSize),
		workerCount: workerCount,
		handler:     handler,
		inFlight:    make(map[int64]bool),
	}
}

func (tp *turnPool) start(ctx context.Context) {
	log.Printf("arrancan %d workers para procesar turnos", tp.workerCount)
	for i := 0; i < tp.workerCount; i++ {
		tp.wg.Add(1)
		go tp.worker(ctx, i)
	}
}

// enqueue devuelve false si el chat ya tiene un turno en vuelo o la cola
// está llena
func (tp *turnPool) enqueue(ctx context.Context, chatID int64, text string) bool {
	tp.inFlightMu.Lock()
	if tp.inFlight[chatID] {
		tp.inFlightMu.Unlock()
		return false
	}
	tp.inFlight[chatID] = true
	tp.inFlightMu.Unlock()

	select {
	case tp.queue <- &turnRequest{chatID: chatID, text: text}:
		return true
	default:
		tp.release(chatID)
		return false
	}
}

func (tp *turnPool) release(chatID int64) {
	tp.inFlightMu.Lock()
	delete(tp.inFlight, chatID)
	tp.inFlightMu.Unlock()
}

func (tp *turnPool) worker(ctx context.Context, id int) {
	defer tp.wg.Done()
	for {
		select {
		case <-ctx.Done():
			log.Printf("worker %d se apaga", id)
			return
		case req, ok := <-tp.queue:
			if !ok {
				return
			}
			if req == nil {
				continue
			}
			tp.processTurn(ctx, req)
		}
	}
}

func (tp *turnPool) processTurn(ctx context.Context, req *turnRequest) {
	turnCtx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()
	defer tp.release(req.chatID)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic procesando turno del chat %d: %v", req.chatID, r)
			tp.handler.sendMessage(req.chatID, "⚠️ Error interno. Probá de nuevo.")
		}
	}()

	tp.handler.handleText(turnCtx, req.chatID, req.text)
}
