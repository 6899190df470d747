package i18n

var catalog = map[string]map[string]string{
	LocalePtBR: {
		"common.success":            "ok",
		"error.bad_request":         "Requisição inválida",
		"error.unauthorized":        "Faça login para continuar",
		"error.forbidden":           "Acesso negado",
		"error.not_found":           "Não encontrado",
		"error.internal":            "Erro interno, tente novamente",
		"error.persistence":         "Não foi possível salvar, tente novamente",
		"error.too_many_requests":   "Muitas requisições, aguarde um pouco",
		"error.invalid_credentials": "E-mail/usuário ou senha inválidos",
		"error.product_not_found":   "PC não encontrado",
		"error.category_not_found":  "Categoria não encontrada",
		"error.game_not_found":      "Jogo não encontrado",
		"error.order_not_found":     "Pedido não encontrado",
		"error.customer_not_found":  "Cliente não encontrado",
		"error.review_not_found":    "Avaliação não encontrada",
		"error.image_not_found":     "Imagem não encontrada",
		"error.cart_empty":          "Seu carrinho está vazio",
		"error.cart_item_not_found": "Item não está no carrinho",
		"error.quantity_invalid":    "Quantidade inválida",
		"error.email_exists":        "E-mail já cadastrado",
		"error.email_invalid":       "E-mail inválido",
		"error.password_mismatch":   "Senha atual incorreta",
		"error.payment_invalid":     "Forma de pagamento indisponível",
		"error.rating_invalid":      "A nota deve estar entre 1 e 5",
		"error.slug_exists":         "Já existe um item com este nome",
		"error.status_transition":   "Mudança de status não permitida",
		"error.upload_invalid":      "Arquivo inválido",
		"error.upload_too_large":    "Arquivo muito grande",
		"error.captcha_invalid":     "Captcha inválido",
		"error.captcha_required":    "Captcha obrigatório",
		"error.validation":          "Dados inválidos",
		"newsletter.subscribed":     "Inscrição realizada com sucesso!",
		"newsletter.already":        "Este e-mail já está inscrito",
		"order.created":             "Pedido realizado com sucesso!",
		"cart.added":                "Produto adicionado ao carrinho",
		"auth.logged_out":           "Sessão encerrada",
		"mail.order_subject":        "Pedido %s recebido - PixelCraft PC",
		"mail.status_subject":       "Atualização do pedido %s",
		"mail.welcome_subject":      "Bem-vindo à newsletter PixelCraft PC",
		"mail.order_body":           "Olá %s,\n\nRecebemos seu pedido %s.\nTotal: R$ %s\nForma de pagamento: %s\n\nObrigado por comprar na PixelCraft PC!",
		"mail.status_body":          "Olá %s,\n\nO pedido %s foi atualizado.\nStatus do pedido: %s\nStatus do pagamento: %s",
		"mail.tracking_line":        "Código de rastreio: %s",
		"mail.welcome_body":         "Obrigado por se inscrever! Você receberá novidades e lançamentos da PixelCraft PC.",
		"error.category_in_use":     "A categoria ainda possui PCs",
		"error.payment_not_found":   "Forma de pagamento não encontrada",
		"review.submitted":          "Avaliação enviada para moderação",
		"profile.updated":           "Dados atualizados",
		"password.changed":          "Senha alterada",
		"error.rate_limited":        "Muitas requisições, tente novamente em %d segundos",
	},
	LocaleEnUS: {
		"common.success":            "ok",
		"error.bad_request":         "Invalid request",
		"error.unauthorized":        "Please sign in to continue",
		"error.forbidden":           "Access denied",
		"error.not_found":           "Not found",
		"error.internal":            "Internal error, please retry",
		"error.persistence":         "Could not save, please retry",
		"error.too_many_requests":   "Too many requests, slow down",
		"error.invalid_credentials": "Invalid e-mail/username or password",
		"error.product_not_found":   "PC not found",
		"error.category_not_found":  "Category not found",
		"error.game_not_found":      "Game not found",
		"error.order_not_found":     "Order not found",
		"error.customer_not_found":  "Customer not found",
		"error.review_not_found":    "Review not found",
		"error.image_not_found":     "Image not found",
		"error.cart_empty":          "Your cart is empty",
		"error.cart_item_not_found": "Item is not in the cart",
		"error.quantity_invalid":    "Invalid quantity",
		"error.email_exists":        "E-mail already registered",
		"error.email_invalid":       "Invalid e-mail",
		"error.password_mismatch":   "Current password is incorrect",
		"error.payment_invalid":     "Payment method unavailable",
		"error.rating_invalid":      "Rating must be between 1 and 5",
		"error.slug_exists":         "An item with this name already exists",
		"error.status_transition":   "Status change not allowed",
		"error.upload_invalid":      "Invalid file",
		"error.upload_too_large":    "File too large",
		"error.captcha_invalid":     "Invalid captcha",
		"error.captcha_required":    "Captcha required",
		"error.validation":          "Invalid data",
		"newsletter.subscribed":     "Subscribed successfully!",
		"newsletter.already":        "This e-mail is already subscribed",
		"order.created":             "Order placed successfully!",
		"cart.added":                "Added to cart",
		"auth.logged_out":           "Signed out",
		"mail.order_subject":        "Order %s received - PixelCraft PC",
		"mail.status_subject":       "Order %s update",
		"mail.welcome_subject":      "Welcome to the PixelCraft PC newsletter",
		"mail.order_body":           "Hi %s,\n\nWe received your order %s.\nTotal: R$ %s\nPayment method: %s\n\nThanks for shopping at PixelCraft PC!",
		"mail.status_body":          "Hi %s,\n\nOrder %s was updated.\nOrder status: %s\nPayment status: %s",
		"mail.tracking_line":        "Tracking code: %s",
		"mail.welcome_body":         "Thanks for subscribing! You will receive news and launches from PixelCraft PC.",
		"error.category_in_use":     "The category still has PCs",
		"error.payment_not_found":   "Payment method not found",
		"review.submitted":          "Review submitted for moderation",
		"profile.updated":           "Profile updated",
		"password.changed":          "Password changed",
		"error.rate_limited":        "Too many requests, retry in %d seconds",
	},
}
