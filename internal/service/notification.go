package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tlecomte/formatrack/internal/domain"
	"github.com/tlecomte/formatrack/internal/rbac"
	"github.com/tlecomte/formatrack/internal/repository"
	"github.com/tlecomte/formatrack/internal/status"
)

// NotificationService génère et distribue les notifications internes :
// balayage des formations arrivant à expiration, consultation et marquage.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	formationRepo    repository.FormationRepository
	equipeRepo       repository.EquipeRepository
	logger           *slog.Logger
	now              func() time.Time
}

// NewNotificationService crée un nouveau NotificationService
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	formationRepo repository.FormationRepository,
	equipeRepo repository.EquipeRepository,
	logger *slog.Logger,
	now func() time.Time,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		formationRepo:    formationRepo,
		equipeRepo:       equipeRepo,
		logger:           logger,
		now:              now,
	}
}

// RapportVerification résume un balayage des expirations
type RapportVerification struct {
	FormationsExaminees   int `json:"formations_examinees"`
	NotificationsCreees   int `json:"notifications_creees"`
	FormationsExpirees    int `json:"formations_expirees"`
	FormationsARenouveler int `json:"formations_a_renouveler"`
}

// VerifierExpirations balaie les formations à date d'expiration de
// l'entreprise et crée les notifications pour les porteurs et leurs
// responsables d'équipe. Une formation Expirée ou À renouveler génère une
// notification par destinataire. L'opération est pensée pour un
// déclenchement quotidien et ne franchit jamais la frontière d'entreprise.
func (s *NotificationService) VerifierExpirations(ctx context.Context, entrepriseID string) (*RapportVerification, error) {
	formations, err := s.formationRepo.ListAvecExpiration(ctx, entrepriseID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	rapport := &RapportVerification{FormationsExaminees: len(formations)}

	var notifications []domain.Notification
	for _, fp := range formations {
		f := fp.Formation
		statut := status.Classify(f.DateExpiration, now)

		var message string
		switch statut {
		case domain.StatutExpiree:
			rapport.FormationsExpirees++
			message = fmt.Sprintf(
				"La formation %s de %s %s a expiré le %s",
				f.Nom, fp.Prenom, fp.Nom, f.DateExpiration.Format("02/01/2006"),
			)
		case domain.StatutARenouveler:
			rapport.FormationsARenouveler++
			message = fmt.Sprintf(
				"La formation %s de %s %s expire le %s",
				f.Nom, fp.Prenom, fp.Nom, f.DateExpiration.Format("02/01/2006"),
			)
		default:
			continue
		}

		destinataires := []string{f.UserID}
		responsables, err := s.equipeRepo.ResponsablesDeMembre(ctx, f.UserID)
		if err != nil {
			return nil, err
		}
		destinataires = append(destinataires, responsables...)

		for _, userID := range destinataires {
			notifications = append(notifications, domain.Notification{
				ID:          uuid.NewString(),
				UserID:      userID,
				FormationID: f.ID,
				Type:        domain.NotificationFormation,
				Message:     message,
			})
		}
	}

	if err := s.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		return nil, err
	}
	rapport.NotificationsCreees = len(notifications)

	s.logger.Info("expiration sweep completed",
		"entreprise_id", entrepriseID,
		"formations", rapport.FormationsExaminees,
		"expirees", rapport.FormationsExpirees,
		"a_renouveler", rapport.FormationsARenouveler,
		"notifications", rapport.NotificationsCreees,
	)

	return rapport, nil
}

// Lister retourne les notifications de l'appelant, de la plus récente à la
// plus ancienne
func (s *NotificationService) Lister(ctx context.Context, caller rbac.Caller) ([]domain.Notification, error) {
	if !caller.Authentifie() {
		return nil, rbac.ErrNonAuthentifie
	}
	return s.notificationRepo.ListByUtilisateur(ctx, caller.ID)
}

// MarquerLue marque une notification de l'appelant comme lue
func (s *NotificationService) MarquerLue(ctx context.Context, caller rbac.Caller, id string) error {
	if !caller.Authentifie() {
		return rbac.ErrNonAuthentifie
	}
	return s.notificationRepo.MarquerLue(ctx, id, caller.ID)
}
