package service

// Тексты, которые видит пользователь.
const (
	MsgCatalogUnavailable = "Impossible de charger les sessions."
	MsgAuthRequired       = "Vous devez être connecté pour réserver une séance. Redirection vers la page de connexion..."

	msgOutsideHoursFmt   = "Les rendez-vous sont uniquement disponibles entre %dh00 et %dh00."
	MsgSlotTaken         = "Cette date et heure sont déjà réservées. Veuillez choisir une autre plage horaire."
	MsgSlotCheckFailed   = "Erreur lors de la vérification de la disponibilité."
	MsgSlotAvailable     = "Ce créneau est disponible."
	MsgNameRequired      = "Veuillez saisir votre nom."
	MsgDateRequired      = "Veuillez sélectionner une date et une heure pour le rendez-vous."
	MsgEmailInvalid      = "Veuillez saisir une adresse e-mail valide."
	MsgPhoneInvalid      = "Veuillez saisir un numéro de téléphone valide."
	MsgAddressRequired   = "Veuillez saisir votre adresse."
	MsgConsentRequired   = "Vous devez accepter les conditions d'utilisation."
	MsgReservationFailed = "Erreur lors de la réservation"
	MsgServerUnreachable = "Erreur lors de la connexion au serveur"
	MsgNoAccessToken     = "Aucun jeton d'accès trouvé"

	MsgOfferingIncomplete = "Les informations de la séance sont incomplètes."
	MsgPaymentExpired     = "La page de paiement a expiré. Veuillez recommencer votre réservation."
	MsgPrefillFailed      = "Impossible de charger vos informations"
	MsgPromoEmpty         = "Veuillez entrer un code promo"
	MsgPromoInvalid       = "Code promo invalide"
	MsgPromoFailed        = "Erreur lors de la validation du code promo"
	MsgProcessorNotReady  = "Stripe.js n'est pas chargé"
	MsgCardMissing        = "Élément de carte non trouvé"
	MsgPaymentDeclined    = "Paiement échoué"
	MsgPaymentConfirmFail = "Échec de la confirmation du paiement"
	MsgPaymentFailed      = "Une erreur est survenue lors du paiement"

	MsgLoginSucceeded = "Connexion réussie ! Bienvenue "
	MsgLoginRejected  = "Une erreur est survenue. Veuillez réessayer."
	MsgLoginFailed    = "Une erreur s’est produite. Veuillez réessayer plus tard."
	MsgUserFetch      = "Impossible de récupérer les données utilisateur."

	MsgRegisterMismatch  = "Le mot de passe ne correspond pas. Réessayer."
	MsgRegisterRejected  = "Une erreur s’est produite lors de l’inscription."
	MsgRegisterFailed    = "Une erreur est survenue durant l'inscription. Réessayer s'il vous plaît."
	MsgRegisterSucceeded = "Votre compte a bien été créé ! Vous allez être redirigé vers la page de connexion."

	MsgPaymentsRejected  = "Impossible de récupérer les paiements."
	MsgPaymentsFailed    = "Une erreur s’est produite. Veuillez réessayer plus tard."
	MsgSettingsRejected  = "Une erreur est survenue. Veuillez réessayer."
	MsgSettingsFailed    = "Une erreur s'est produite. Veuillez réessayer plus tard."
	MsgSettingsSaved     = "Vos paramètres ont été mis à jour avec succès."
	MsgPasswordMismatch  = "Les mots de passe ne correspondent pas."
	MsgPasswordChanged   = "Votre mot de passe a été changé avec succès."
)
