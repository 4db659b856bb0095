package server

// HTMLPage is the html/template source for the signup page.
// Every element the browser suite touches carries a data-testid attribute.
// The page catches its own failures and never writes to the console.
const HTMLPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Signup</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            max-width: 640px;
            margin: 0 auto;
            padding: 16px;
            background: #f5f5f5;
        }
        header {
            background: #222;
            color: white;
            padding: 16px;
            border-radius: 8px;
            text-align: center;
        }
        nav ul {
            list-style: none;
            padding: 0;
            display: flex;
            flex-wrap: wrap;
            gap: 12px;
            justify-content: center;
        }
        nav li { color: #61dafb; }
        form {
            background: white;
            margin-top: 16px;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        label { display: block; margin-top: 12px; color: #333; }
        input {
            width: 100%;
            box-sizing: border-box;
            padding: 10px;
            font-size: 16px;
            border: 1px solid #ccc;
            border-radius: 4px;
        }
        button {
            margin-top: 16px;
            width: 100%;
            background: #4285f4;
            color: white;
            border: none;
            padding: 12px;
            border-radius: 4px;
            font-size: 16px;
        }
        .success { color: #155724; background: #d4edda; padding: 12px; border-radius: 4px; }
        .error { color: #721c24; background: #f8d7da; padding: 12px; border-radius: 4px; }
        .hidden { display: none; }
    </style>
</head>
<body>
    <header>
        <h1 data-testid="{{.IDs.heading}}">{{.Heading}}</h1>
        <nav data-testid="{{.IDs.navbar}}">
            <ul>
                {{- range .NavItems}}
                <li data-testid="{{$.IDs.navItem}}">{{.}}</li>
                {{- end}}
            </ul>
        </nav>
    </header>

    <form id="signup" novalidate>
        <label for="firstName">First name</label>
        <input id="firstName" name="firstName" type="text" autocomplete="off" data-testid="{{.IDs.firstName}}">

        <label for="lastName">Last name</label>
        <input id="lastName" name="lastName" type="text" autocomplete="off" data-testid="{{.IDs.lastName}}">

        <label for="email">Email</label>
        <input id="email" name="email" type="email" autocomplete="off" data-testid="{{.IDs.email}}">

        <label for="password">Password</label>
        <input id="password" name="password" type="password" autocomplete="off" data-testid="{{.IDs.password}}">

        <button type="submit" data-testid="{{.IDs.submit}}">Submit</button>
        <div id="result"></div>
    </form>

    <section>
        <h3 data-testid="{{.IDs.starWars}}">Loading...</h3>
    </section>

    <script>
        (function () {
            var successID = {{.IDs.success}};
            var failure = {{.Failure}};
            var starWarsURL = {{.StarWarsURL}};

            var form = document.getElementById('signup');
            var result = document.getElementById('result');

            function show(cls, text, testid) {
                result.innerHTML = '';
                var p = document.createElement('p');
                p.className = cls;
                p.textContent = text;
                if (testid) {
                    p.setAttribute('data-testid', testid);
                }
                result.appendChild(p);
            }

            form.addEventListener('submit', function (e) {
                e.preventDefault();
                var body = {
                    firstName: form.firstName.value,
                    lastName: form.lastName.value,
                    email: form.email.value,
                    password: form.password.value
                };
                fetch('/api/login', {
                    method: 'POST',
                    credentials: 'same-origin',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify(body)
                }).then(function (resp) {
                    return resp.json().then(function (data) {
                        if (!resp.ok) {
                            throw new Error(data.error || ('status ' + resp.status));
                        }
                        return data;
                    });
                }).then(function (data) {
                    show('success', 'Welcome, ' + data.firstName + '!', successID);
                }).catch(function (err) {
                    show('error', err.message, null);
                });
            });

            var starWars = document.querySelector('[data-testid="' + {{.IDs.starWars}} + '"]');
            fetch(starWarsURL).then(function (resp) {
                if (!resp.ok) {
                    throw new Error('status ' + resp.status);
                }
                return resp.json();
            }).then(function (data) {
                starWars.textContent = data.name;
            }).catch(function () {
                starWars.textContent = failure;
            });
        })();
    </script>
</body>
</html>
`
