package callbacks

import (
	"context"
	"strings"

	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/common"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/dogs"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/family"
	"github.com/Antoshhka/dogcare_bot/internal/controller/callbacks/schedule"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot

// Common callbacks
const (
	MainMenu = "main_menu"
	Noop     = "noop"
)

// Dog callbacks
const (
	DogsList         = "dogs_list"
	AddDog           = "add_dog"
	ViewDog          = "view_dog:"           // view_dog:123
	DogGender        = "dog_gender:"         // dog_gender:male
	DeleteDog        = "delete_dog:"         // delete_dog:123
	ConfirmDeleteDog = "confirm_delete_dog:" // confirm_delete_dog:123
)

// Schedule callbacks - day view and management
const (
	DayView               = "sched_day:"               // sched_day:2026-08-31
	DayImage              = "day_image:"               // day_image:2026-08-31
	ToggleInstance        = "toggle_instance:"         // toggle_instance:sid:iid:2026-08-31
	ViewSchedule          = "view_schedule:"           // view_schedule:123
	EditScheduleDesc      = "edit_sched_desc:"         // edit_sched_desc:123
	DeleteSchedule        = "delete_schedule:"         // delete_schedule:123
	ConfirmDeleteSchedule = "confirm_delete_schedule:" // confirm_delete_schedule:123
)

// Schedule callbacks - creation wizard
const (
	StartFlow       = "sched_create:" // sched_create:2026-08-31
	FlowDog         = "flow_dog:"     // flow_dog:123
	FlowType        = "flow_type:"    // flow_type:meal
	FlowBack        = "flow_back"
	FlowRepeat      = "flow_repeat:" // flow_repeat:daily
	FlowCount       = "flow_count:"  // flow_count:3
	FlowTimesToggle = "flow_times_toggle"
	FlowTime        = "flow_time:" // flow_time:8:30
	FlowTimeCustom  = "flow_time_custom"
	FlowNotif       = "flow_notif:" // flow_notif:off, flow_notif:10
	FlowDesc        = "flow_desc"
	FlowSubmit      = "flow_submit"
	FlowCancel      = "flow_cancel"
)

// Family callbacks
const (
	FamilyInfo   = "family_info"
	FamilyInvite = "family_invite"
	FamilyJoin   = "family_join"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == MainMenu:
		common.AnswerCallback(ctx, b, callback.ID, "")
		if h.HandleMainMenu != nil {
			h.HandleMainMenu(ctx, b, &models.Update{CallbackQuery: callback})
		}
	case data == Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Dogs =====
	case data == DogsList:
		dogs.HandleDogsList(ctx, b, callback, h)
	case data == AddDog:
		dogs.HandleAddDog(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewDog):
		dogs.HandleViewDog(ctx, b, callback, h)
	case strings.HasPrefix(data, DogGender):
		dogs.HandleDogGender(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteDog):
		dogs.HandleDeleteDog(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeleteDog):
		dogs.HandleConfirmDeleteDog(ctx, b, callback, h)

	// ===== Schedule: Day View =====
	case strings.HasPrefix(data, DayView):
		schedule.HandleDayView(ctx, b, callback, h)
	case strings.HasPrefix(data, DayImage):
		schedule.HandleDayImage(ctx, b, callback, h)
	case strings.HasPrefix(data, ToggleInstance):
		schedule.HandleToggleInstance(ctx, b, callback, h)
	case strings.HasPrefix(data, ViewSchedule):
		schedule.HandleViewSchedule(ctx, b, callback, h)
	case strings.HasPrefix(data, EditScheduleDesc):
		schedule.HandleEditDescription(ctx, b, callback, h)
	case strings.HasPrefix(data, ConfirmDeleteSchedule):
		schedule.HandleConfirmDeleteSchedule(ctx, b, callback, h)
	case strings.HasPrefix(data, DeleteSchedule):
		schedule.HandleDeleteSchedule(ctx, b, callback, h)

	// ===== Schedule: Creation Wizard =====
	case strings.HasPrefix(data, StartFlow):
		schedule.HandleStartFlow(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowDog):
		schedule.HandleFlowDog(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowType):
		schedule.HandleFlowType(ctx, b, callback, h)
	case data == FlowBack:
		schedule.HandleFlowBack(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowRepeat):
		schedule.HandleFlowRepeat(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowCount):
		schedule.HandleFlowCount(ctx, b, callback, h)
	case data == FlowTimesToggle:
		schedule.HandleFlowTimesToggle(ctx, b, callback, h)
	case data == FlowTimeCustom:
		schedule.HandleFlowTimeCustom(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowTime):
		schedule.HandleFlowTime(ctx, b, callback, h)
	case strings.HasPrefix(data, FlowNotif):
		schedule.HandleFlowNotif(ctx, b, callback, h)
	case data == FlowDesc:
		schedule.HandleFlowDesc(ctx, b, callback, h)
	case data == FlowSubmit:
		schedule.HandleFlowSubmit(ctx, b, callback, h)
	case data == FlowCancel:
		schedule.HandleFlowCancel(ctx, b, callback, h)

	// ===== Family =====
	case data == FamilyInfo:
		family.HandleFamilyInfo(ctx, b, callback, h)
	case data == FamilyInvite:
		family.HandleFamilyInvite(ctx, b, callback, h)
	case data == FamilyJoin:
		family.HandleFamilyJoin(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback", zap.String("data", data))
		common.AnswerCallback(ctx, b, callback.ID, "")
	}
}
